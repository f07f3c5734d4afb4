package httpenv

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rddlgo/rddlgo/internal/ast"
	"github.com/rddlgo/rddlgo/internal/model"
)

func pvar(name string) *ast.PVar { return &ast.PVar{Name: name} }
func konst(v any) *ast.Constant  { return &ast.Constant{Value: v} }

func toggleModel() *model.Model {
	m := model.New()
	m.States["p"] = false
	m.StateRanges["p"] = "bool"
	m.NextState["p"] = "p'"
	m.PrevState["p'"] = "p"
	m.InitState["p"] = false
	m.Actions["flip"] = false
	m.ActionRanges["flip"] = "bool"
	m.CPFs["p'"] = &ast.Boolean{Op: ast.Or, Children: []ast.Expr{pvar("p"), pvar("flip")}}
	m.CPFOrder[0] = []string{"p"}
	m.Reward = konst(0.0)
	m.Horizon = 5
	m.Discount = 1.0
	m.MaxAllowedActions = 1
	return m
}

func newTestRouter() chi.Router {
	r := chi.NewRouter()
	reg := newEpisodeRegistry(toggleModel(), 1, false)
	RegisterRoutes(r, reg)
	return r
}

func TestResetCreatesEpisode(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/episodes/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp resetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.EpisodeID)
	assert.Equal(t, false, resp.Observation["p"])
}

func TestStepAdvancesEpisode(t *testing.T) {
	r := newTestRouter()

	resetReq := httptest.NewRequest(http.MethodPost, "/episodes/", nil)
	resetW := httptest.NewRecorder()
	r.ServeHTTP(resetW, resetReq)
	var resetResp resetResponse
	require.NoError(t, json.Unmarshal(resetW.Body.Bytes(), &resetResp))

	body, err := json.Marshal(stepRequest{Actions: map[string]any{"flip": true}})
	require.NoError(t, err)

	stepReq := httptest.NewRequest(http.MethodPost, "/episodes/"+resetResp.EpisodeID+"/step", bytes.NewReader(body))
	stepW := httptest.NewRecorder()
	r.ServeHTTP(stepW, stepReq)

	require.Equal(t, http.StatusOK, stepW.Code)
	var stepResp stepResponse
	require.NoError(t, json.Unmarshal(stepW.Body.Bytes(), &stepResp))
	assert.Equal(t, true, stepResp.Observation["p"])
	assert.False(t, stepResp.Done)
}

func TestStepUnknownEpisodeReturns404(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/episodes/does-not-exist/step", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSpacesReportsDescriptors(t *testing.T) {
	r := newTestRouter()

	resetReq := httptest.NewRequest(http.MethodPost, "/episodes/", nil)
	resetW := httptest.NewRecorder()
	r.ServeHTTP(resetW, resetReq)
	var resetResp resetResponse
	require.NoError(t, json.Unmarshal(resetW.Body.Bytes(), &resetResp))

	spacesReq := httptest.NewRequest(http.MethodGet, "/episodes/"+resetResp.EpisodeID+"/spaces", nil)
	spacesW := httptest.NewRecorder()
	r.ServeHTTP(spacesW, spacesReq)

	require.Equal(t, http.StatusOK, spacesW.Code)
	var resp spacesResponse
	require.NoError(t, json.Unmarshal(spacesW.Body.Bytes(), &resp))
	assert.Equal(t, "discrete", resp.ActionSpace["flip"].Kind)
	assert.Equal(t, int64(2), resp.ActionSpace["flip"].N)
	assert.Equal(t, 5, resp.Horizon)
}
