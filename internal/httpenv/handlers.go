package httpenv

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	rerrors "github.com/rddlgo/rddlgo/internal/errors"
	"github.com/rddlgo/rddlgo/internal/rlenv"
)

func toSpaceDTOs(spaces map[string]rlenv.Space) map[string]spaceDTO {
	out := make(map[string]spaceDTO, len(spaces))
	for name, s := range spaces {
		dto := spaceDTO{Low: s.Low, High: s.High}
		switch s.Kind {
		case rlenv.KindDiscrete:
			dto.Kind = "discrete"
			dto.N = s.N
			dto.Start = s.Start
		case rlenv.KindBox:
			dto.Kind = "box"
		}
		out[name] = dto
	}
	return out
}

type episodeHandler struct {
	reg *episodeRegistry
}

type resetResponse struct {
	EpisodeID   string         `json:"episode_id"`
	Observation map[string]any `json:"observation"`
}

// Reset handles POST /episodes: it builds a fresh Environment, resets it,
// and returns the stamped episode ID alongside the initial observation.
func (h *episodeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	env, obs, err := h.reg.create()
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resetResponse{
		EpisodeID:   env.EpisodeID(),
		Observation: obs,
	})
}

type stepRequest struct {
	Actions map[string]any `json:"actions"`
}

type stepResponse struct {
	Observation map[string]any `json:"observation"`
	Reward      float64        `json:"reward"`
	Done        bool           `json:"done"`
}

// Step handles POST /episodes/{id}/step: it decodes the requested actions,
// delegates to the episode's Environment, and reports the resulting
// observation, reward, and done flag.
func (h *episodeHandler) Step(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	env, err := h.reg.get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "EPISODE_NOT_FOUND", err.Error())
		return
	}

	var req stepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	obs, reward, done, err := env.Step(req.Actions)
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stepResponse{Observation: obs, Reward: reward, Done: done})
}

type spacesResponse struct {
	ActionSpace          map[string]spaceDTO `json:"action_space"`
	ObservationSpace     map[string]spaceDTO `json:"observation_space"`
	Horizon              int                 `json:"horizon"`
	Discount             float64             `json:"discount"`
	NumConcurrentActions int                 `json:"num_concurrent_actions"`
}

type spaceDTO struct {
	Kind  string  `json:"kind"`
	N     int64   `json:"n,omitempty"`
	Start int64   `json:"start,omitempty"`
	Low   float64 `json:"low,omitempty"`
	High  float64 `json:"high,omitempty"`
}

// Spaces handles GET /episodes/{id}/spaces: it reports the action and
// observation space descriptors the Environment built at construction.
func (h *episodeHandler) Spaces(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	env, err := h.reg.get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "EPISODE_NOT_FOUND", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, spacesResponse{
		ActionSpace:          toSpaceDTOs(env.ActionSpace()),
		ObservationSpace:     toSpaceDTOs(env.ObservationSpace()),
		Horizon:              env.Horizon(),
		Discount:             env.Discount(),
		NumConcurrentActions: env.NumConcurrentActions(),
	})
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeReportError maps a *errors.Report's code to an HTTP status. A
// non-Report error is a 404 when it is the registry's episode-not-found
// error and a 500 otherwise.
func writeReportError(w http.ResponseWriter, err error) {
	var report *rerrors.Report
	if r, ok := rerrors.AsReport(err); ok {
		report = r
	}
	if report == nil {
		if errors.Is(err, errEpisodeNotFound) {
			writeError(w, http.StatusNotFound, "EPISODE_NOT_FOUND", err.Error())
			return
		}
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	status := http.StatusUnprocessableEntity
	switch report.Code {
	case rerrors.ENV001, rerrors.SIM004, rerrors.SIM003:
		status = http.StatusBadRequest
	}
	writeError(w, status, report.Code, report.Message)
}
