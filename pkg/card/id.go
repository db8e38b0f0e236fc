package card

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateNewCardID returns the id following the highest existing suffix.
// An empty list, or one without any parseable id, yields "card001".
func GenerateNewCardID(cards []Card) string {
	maxSuffix := 0
	for _, c := range cards {
		n, ok := ParseSuffix(c.ID)
		if ok && n > maxSuffix {
			maxSuffix = n
		}
	}
	return FormatID(maxSuffix + 1)
}

// FormatID renders a numeric suffix as a card id, zero-padded to three digits.
func FormatID(n int) string {
	return fmt.Sprintf("%s%03d", IDPrefix, n)
}

// ParseSuffix extracts the numeric part of an id such as "card042". Suffixes of
// any length are accepted.
func ParseSuffix(id string) (int, bool) {
	if len(id) <= len(IDPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(IDPrefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IsValidID reports whether id has the card prefix and a numeric suffix of at
// least three digits.
func IsValidID(id string) bool {
	if !strings.HasPrefix(id, IDPrefix) || len(id) < len(IDPrefix)+3 {
		return false
	}
	for _, r := range id[len(IDPrefix):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
