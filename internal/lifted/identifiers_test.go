package lifted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdentifierFoldsNFDToNFC(t *testing.T) {
	// "é" as NFD (e + combining acute) must normalize to the same bytes as NFC.
	nfd := "café"
	nfc := "café"
	assert.Equal(t, nfc, NormalizeIdentifier(nfd))
	assert.Equal(t, nfc, NormalizeIdentifier(nfc))
}

func TestBuildUniverseNormalizesObjectNames(t *testing.T) {
	u, err := BuildUniverse([]TypeEntry{
		{Type: "obj", Objects: []string{"café"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, u.Objects("obj"))
}
