package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"server/internal/generation"
	"server/internal/middleware"
	"server/internal/providers/openai"
)

// Generate handles POST /v1/generate: one synchronous pipeline invocation.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.RequestID = middleware.RequestIDFromContext(r.Context())

	res, err := a.Dispatcher.Generate(r.Context(), req)
	if err != nil {
		a.renderGenerateError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, res)
}

func (a *App) renderGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, generation.ErrEmptyPrompt):
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
	case errors.Is(err, openai.ErrMissingAPIKey):
		a.error(w, http.StatusInternalServerError, "configuration", "image provider credential is not configured")
	case errors.Is(err, generation.ErrNoVideoProvider):
		a.error(w, http.StatusInternalServerError, "configuration", "no video provider credential is configured")
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("generation failed")
		a.error(w, http.StatusBadGateway, "generation_failed", err.Error())
	}
}
