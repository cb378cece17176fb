package handlers

import (
	"net/http"
)

// Health reports liveness plus which generation providers hold credentials,
// so a deploy can be checked without burning a real generation call.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	providers := map[string]bool{}
	if a.Config != nil {
		providers["openai"] = a.Config.HasOpenAI()
		providers["runway"] = a.Config.HasRunway()
		providers["luma"] = a.Config.HasLuma()
	}
	a.json(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": providers,
	})
}
