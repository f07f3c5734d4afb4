// Package httpenv exposes the RL surface (§6) of a rlenv.Environment as a
// REST service, grounded on mattbaird-ontology's internal/server/server.go
// router-construction and middleware-registration idiom.
package httpenv

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rddlgo/rddlgo/internal/model"
)

// Config holds server configuration.
type Config struct {
	Port                     int
	Model                    *model.Model
	Seed                     uint64
	EnforceActionConstraints bool
}

// Run starts the HTTP server with every episode route registered, and
// shuts it down gracefully when ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	r := chi.NewRouter()
	r.Use(Logging, Recovery)

	registry := newEpisodeRegistry(cfg.Model, cfg.Seed, cfg.EnforceActionConstraints)
	RegisterRoutes(r, registry)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting rddlsim server on %s", addr)

	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	return server.ListenAndServe()
}

// RegisterRoutes wires the episode lifecycle endpoints onto r.
func RegisterRoutes(r chi.Router, reg *episodeRegistry) {
	h := &episodeHandler{reg: reg}
	r.Route("/episodes", func(r chi.Router) {
		r.Post("/", h.Reset)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/step", h.Step)
			r.Get("/spaces", h.Spaces)
		})
	})
}
