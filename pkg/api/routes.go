// Route registration for the cards API.

package api

import (
	"net/http"
)

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)

	mux.HandleFunc("GET /cards", a.handleListCards)
	mux.HandleFunc("POST /cards", a.handleCreateCard)
	mux.HandleFunc("GET /cards/{cardId}", a.handleGetCard)
	mux.HandleFunc("DELETE /cards/{cardId}", a.handleDeleteCard)
}
