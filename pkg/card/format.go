package card

// FormatCard joins a card with its cover template. A missing first page or an
// unknown template id yields an empty ImageURL.
func FormatCard(c Card, templates []Template) FormattedCard {
	out := FormattedCard{
		Title:  c.Title,
		CardID: c.ID,
	}
	coverID := c.CoverTemplateID()
	if coverID == "" {
		return out
	}
	for i := range templates {
		if templates[i].ID == coverID {
			out.ImageURL = templates[i].ImageURL
			break
		}
	}
	return out
}

// FormatCardsResponse formats every card. It returns an empty, non-nil slice
// when either input is empty. Neither input is modified.
func FormatCardsResponse(cards []Card, templates []Template) []FormattedCard {
	if len(cards) == 0 || len(templates) == 0 {
		return []FormattedCard{}
	}
	out := make([]FormattedCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, FormatCard(c, templates))
	}
	return out
}
