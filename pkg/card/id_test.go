package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNewCardID(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty list", nil, "card001"},
		{"sequential", []string{"card001", "card002"}, "card003"},
		{"gap after delete", []string{"card001", "card007"}, "card008"},
		{"unordered", []string{"card005", "card002", "card003"}, "card006"},
		{"short suffix", []string{"card1", "card2"}, "card003"},
		{"past three digits", []string{"card999"}, "card1000"},
		{"unparseable ignored", []string{"cardabc", "card004", "x"}, "card005"},
		{"only unparseable", []string{"bogus"}, "card001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := make([]Card, 0, len(tt.ids))
			for _, id := range tt.ids {
				cards = append(cards, Card{ID: id})
			}
			assert.Equal(t, tt.want, GenerateNewCardID(cards))
		})
	}
}

func TestGenerateNewCardID_StrictlyGreater(t *testing.T) {
	cards := []Card{{ID: "card001"}, {ID: "card010"}, {ID: "card003"}}

	next := GenerateNewCardID(cards)
	n, ok := ParseSuffix(next)

	assert.True(t, ok)
	for _, c := range cards {
		prev, _ := ParseSuffix(c.ID)
		assert.Greater(t, n, prev)
	}
	assert.True(t, IsValidID(next))
}

func TestParseSuffix(t *testing.T) {
	n, ok := ParseSuffix("card042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = ParseSuffix("card")
	assert.False(t, ok)

	_, ok = ParseSuffix("card-01")
	assert.False(t, ok)
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("card001"))
	assert.True(t, IsValidID("card1000"))
	assert.False(t, IsValidID("card01"))
	assert.False(t, IsValidID("cardx01"))
	assert.False(t, IsValidID("tpl001"))
	assert.False(t, IsValidID(""))
}
