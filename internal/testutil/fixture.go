// Package testutil provides the seed card dataset shared by package tests.
package testutil

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/osaxon/nc-tech-test/pkg/card"
)

// File names used by the file store.
const (
	CardsFile     = "cards.json"
	TemplatesFile = "templates.json"
)

//go:embed testdata/cards.json
var cardsJSON []byte

//go:embed testdata/templates.json
var templatesJSON []byte

// CardsJSON returns the raw seed card document.
func CardsJSON() []byte {
	return bytes.Clone(cardsJSON)
}

// TemplatesJSON returns the raw seed template document.
func TemplatesJSON() []byte {
	return bytes.Clone(templatesJSON)
}

// Cards returns a fresh copy of the three seed cards (card001..card003).
func Cards(t testing.TB) []card.Card {
	t.Helper()
	var cards []card.Card
	if err := json.Unmarshal(cardsJSON, &cards); err != nil {
		t.Fatalf("decode seed cards: %v", err)
	}
	return cards
}

// Templates returns a fresh copy of the seed templates.
func Templates(t testing.TB) []card.Template {
	t.Helper()
	var templates []card.Template
	if err := json.Unmarshal(templatesJSON, &templates); err != nil {
		t.Fatalf("decode seed templates: %v", err)
	}
	return templates
}

// WriteDataDir writes the seed dataset into a fresh temporary directory and
// returns its path.
func WriteDataDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, CardsFile), cardsJSON)
	WriteFile(t, filepath.Join(dir, TemplatesFile), templatesJSON)
	return dir
}

// WriteFile writes data to path, failing the test on error.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadCards decodes the card file at path.
func ReadCards(t testing.TB, path string) []card.Card {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var cards []card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cards
}
