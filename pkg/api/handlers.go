package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/osaxon/nc-tech-test/pkg/api/types"
	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/httputil"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, types.HealthResponse{
		Status:  "ok",
		Uptime:  a.Uptime(),
		Version: a.version,
	})
}

// handleListCards handles GET /cards.
func (a *API) handleListCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := card.NewFilter(r.URL.Query().Get("filter"))
	if err != nil {
		httputil.WriteBadRequest(w, filterMessage(err))
		return
	}

	cards, err := a.cards.List(ctx)
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "list cards", ErrMsgListCards))
		return
	}

	cards, err = filter.Apply(cards)
	if err != nil {
		httputil.WriteBadRequest(w, filterMessage(err))
		return
	}

	templates, err := a.templates.ListTemplates(ctx)
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "list templates", ErrMsgListCards))
		return
	}

	httputil.WriteOK(w, types.NewCardsResponse(card.FormatCardsResponse(cards, templates)))
}

// handleGetCard handles GET /cards/{cardId}.
func (a *API) handleGetCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("cardId")

	c, err := a.cards.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFound(w, ErrMsgCardMissing)
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "get card", ErrMsgGetCard, "card_id", id))
		return
	}

	templates, err := a.templates.ListTemplates(ctx)
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "list templates", ErrMsgGetCard, "card_id", id))
		return
	}

	httputil.WriteOK(w, card.FormatCard(c, templates))
}

// handleCreateCard handles POST /cards.
func (a *API) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}

	result, err := a.validator.ValidateJSON(body)
	if err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	if !result.Valid {
		httputil.WriteBadRequest(w, invalidCardPrefix+result.Summary())
		return
	}

	var newCard card.Card
	if err := json.Unmarshal(body, &newCard); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}

	created, err := a.insertCard(ctx, newCard)
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "create card", ErrMsgCreateCard))
		return
	}

	templates, err := a.templates.ListTemplates(ctx)
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "list templates", ErrMsgCreateCard, "card_id", created.ID))
		return
	}

	a.log.Info("card created", "card_id", created.ID, "request_id", RequestID(ctx))
	httputil.WriteOK(w, card.FormatCard(created, templates))
}

// insertCard assigns the next free id to c and persists it. Any id supplied
// by the client is replaced.
func (a *API) insertCard(ctx context.Context, c card.Card) (card.Card, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := a.cards.List(ctx)
	if err != nil {
		return card.Card{}, fmt.Errorf("read cards: %w", err)
	}

	c.ID = card.GenerateNewCardID(existing)
	if err := a.cards.Put(ctx, c); err != nil {
		return card.Card{}, fmt.Errorf("persist card %s: %w", c.ID, err)
	}
	return c, nil
}

// handleDeleteCard handles DELETE /cards/{cardId}.
func (a *API) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("cardId")

	a.mu.Lock()
	err := a.cards.Delete(ctx, id)
	a.mu.Unlock()

	if errors.Is(err, store.ErrNotFound) {
		httputil.WriteNotFound(w, ErrMsgCardMissing)
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, sanitizeError(err, a.log, "delete card", ErrMsgDeleteCard, "card_id", id))
		return
	}

	a.log.Info("card deleted", "card_id", id, "request_id", RequestID(ctx))
	httputil.WriteText(w, http.StatusOK, fmt.Sprintf("Card %s deleted", id))
}
