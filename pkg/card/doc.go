// Package card defines the card and template records served by cardsd and the
// pure functions that operate on them.
//
// # Records
//
// A Card is a persisted product with pages and pricing/size metadata. A Template
// is read-only reference data that supplies a cover image URL. FormattedCard is
// the projection returned to API clients:
//
//	formatted := card.FormatCardsResponse(cards, templates)
//
// # Identifiers
//
// Card ids have the form "card" followed by an integer suffix padded to at least
// three digits. New ids are derived from the highest existing suffix, so gaps
// left by deleted cards are never filled:
//
//	id := card.GenerateNewCardID(cards) // "card004" after card001..card003
//
// # Filtering
//
// Filter compiles an expr-lang boolean expression that is evaluated against
// each raw card:
//
//	f, err := card.NewFilter(`basePrice > 150 && "md" in sizes`)
//	matching, err := f.Apply(cards)
package card
