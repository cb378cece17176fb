package handlers

import "net/http"

type dishItem struct {
	Name                 string   `json:"name"`
	Cuisine              string   `json:"cuisine"`
	Type                 string   `json:"type"`
	CanonicalIngredients []string `json:"canonical_ingredients"`
}

// Dishes handles GET /v1/dishes: the knowledge base as dashboard autocomplete
// data. Forbidden ingredients are an internal constraint and are not exposed.
func (a *App) Dishes(w http.ResponseWriter, r *http.Request) {
	items := make([]dishItem, 0, a.KB.Len())
	for _, d := range a.KB.All() {
		items = append(items, dishItem{
			Name:                 d.Name,
			Cuisine:              d.Cuisine,
			Type:                 d.Type,
			CanonicalIngredients: d.CanonicalIngredients,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
