package httpenv

import (
	"errors"
	"sync"

	"github.com/rddlgo/rddlgo/internal/model"
	"github.com/rddlgo/rddlgo/internal/rlenv"
)

var errEpisodeNotFound = errors.New("episode not found")

// episodeRegistry tracks live rlenv.Environment instances by their episode
// ID, one instance per in-flight episode. Each episode owns its own
// Environment (and therefore its own PRNG stream), so concurrent episodes
// never interleave state.
type episodeRegistry struct {
	mu                       sync.Mutex
	m                        *model.Model
	seed                     uint64
	enforceActionConstraints bool
	episodes                 map[string]*rlenv.Environment
}

func newEpisodeRegistry(m *model.Model, seed uint64, enforceActionConstraints bool) *episodeRegistry {
	return &episodeRegistry{
		m:                        m,
		seed:                     seed,
		enforceActionConstraints: enforceActionConstraints,
		episodes:                 map[string]*rlenv.Environment{},
	}
}

// create constructs a fresh Environment, resets it, and registers it under
// the episode ID the reset stamped.
func (reg *episodeRegistry) create() (*rlenv.Environment, map[string]any, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	env := rlenv.New(reg.m, reg.seed, reg.enforceActionConstraints)
	obs, err := env.Reset()
	if err != nil {
		return nil, nil, err
	}

	reg.episodes[env.EpisodeID()] = env
	reg.seed++
	return env, obs, nil
}

func (reg *episodeRegistry) get(id string) (*rlenv.Environment, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	env, ok := reg.episodes[id]
	if !ok {
		return nil, errEpisodeNotFound
	}
	return env, nil
}
