// Package api serves the cards HTTP interface.
//
// Routes:
//
//	GET    /cards             list formatted cards, optionally filtered
//	POST   /cards             create a card with a generated id
//	GET    /cards/{cardId}    fetch one formatted card
//	DELETE /cards/{cardId}    remove a card
//	GET    /health            liveness probe
//
// Every request re-reads the configured store; nothing is cached. Create and
// delete are serialized by a mutex held by the API, so concurrent requests
// handled by one process never lose updates.
package api
