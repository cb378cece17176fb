package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"server/internal/dish"
	"server/internal/generation"
	"server/internal/infra"
)

// Generator is the slice of the dispatcher the handlers depend on.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// App is the handler container holding the wired pipeline.
type App struct {
	Config     *infra.Config
	Logger     infra.Logger
	KB         *dish.KnowledgeBase
	Dispatcher Generator
}

// NewApp builds the handler container.
func NewApp(cfg *infra.Config, logger infra.Logger, kb *dish.KnowledgeBase, dispatcher Generator) *App {
	return &App{Config: cfg, Logger: logger, KB: kb, Dispatcher: dispatcher}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message, details string) {
	a.json(w, code, map[string]string{"error": message, "details": details})
}
