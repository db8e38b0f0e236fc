package card

// IDPrefix is the fixed prefix of every card id.
const IDPrefix = "card"

// Card is a persisted card record.
type Card struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	TemplateID string   `json:"template_id"`
	Sizes      []string `json:"sizes"`
	BasePrice  float64  `json:"basePrice"`
	Pages      []Page   `json:"pages"`
}

// Page is a single page of a card. Template holds a template id.
type Page struct {
	Title    string `json:"title"`
	Template string `json:"template"`
}

// Template is read-only reference data for cover images.
type Template struct {
	ID       string `json:"id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	ImageURL string `json:"imageUrl"`
}

// FormattedCard is the response shape of a card. It is never persisted.
type FormattedCard struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	CardID   string `json:"card_id"`
}

// CoverTemplateID returns the template id of the first page, or "" when the
// card has no pages.
func (c Card) CoverTemplateID() string {
	if len(c.Pages) == 0 {
		return ""
	}
	return c.Pages[0].Template
}

// Clone returns a deep copy of the card.
func (c Card) Clone() Card {
	out := c
	if c.Sizes != nil {
		out.Sizes = append([]string(nil), c.Sizes...)
	}
	if c.Pages != nil {
		out.Pages = append([]Page(nil), c.Pages...)
	}
	return out
}
