// Package types provides the response shapes shared by the HTTP API and the
// CLI, so both emit the same JSON.
package types

import (
	"github.com/osaxon/nc-tech-test/pkg/card"
)

// CardsResponse is the body of GET /cards.
type CardsResponse struct {
	Cards []card.FormattedCard `json:"cards"`
}

// NewCardsResponse wraps formatted cards, never encoding a null list.
func NewCardsResponse(cards []card.FormattedCard) CardsResponse {
	if cards == nil {
		cards = []card.FormattedCard{}
	}
	return CardsResponse{Cards: cards}
}

// HealthResponse is a simple health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  int    `json:"uptime"`
	Version string `json:"version,omitempty"`
}
