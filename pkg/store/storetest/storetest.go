// Package storetest holds the behavioural suite every store backend must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaxon/nc-tech-test/internal/testutil"
	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

// Factory returns a store seeded with the testutil dataset.
type Factory func(t *testing.T) store.Store

// Run exercises s against the store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("List", func(t *testing.T) {
		s := newStore(t)
		cards, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testutil.Cards(t), cards)
	})

	t.Run("ListTemplates", func(t *testing.T) {
		s := newStore(t)
		templates, err := s.ListTemplates(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testutil.Templates(t), templates)
	})

	t.Run("Get", func(t *testing.T) {
		s := newStore(t)
		c, err := s.Get(context.Background(), "card002")
		require.NoError(t, err)
		assert.Equal(t, "card 2 title", c.Title)
		assert.Equal(t, []string{"md"}, c.Sizes)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "doesnotexist")
		assert.True(t, errors.Is(err, store.ErrNotFound))
		assert.False(t, store.IsStorageError(err))
	})

	t.Run("PutAppends", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		newCard := card.Card{
			ID:         "card004",
			Title:      "new card",
			TemplateID: "template001",
			Sizes:      []string{"sm"},
			BasePrice:  99.5,
			Pages:      []card.Page{{Title: "Front Cover", Template: "template001"}},
		}
		require.NoError(t, s.Put(ctx, newCard))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 4)
		assert.Equal(t, newCard, cards[3])
	})

	t.Run("PutReplaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		c, err := s.Get(ctx, "card001")
		require.NoError(t, err)
		c.Title = "renamed"
		require.NoError(t, s.Put(ctx, c))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 3)
		assert.Equal(t, "card001", cards[0].ID)
		assert.Equal(t, "renamed", cards[0].Title)
	})

	t.Run("Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.Delete(ctx, "card001"))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, cards, 2)

		err = s.Delete(ctx, "card001")
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("ReplaceAll", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		seed := testutil.Cards(t)
		require.NoError(t, s.ReplaceAll(ctx, seed[1:2]))

		cards, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "card002", cards[0].ID)

		require.NoError(t, s.ReplaceAll(ctx, nil))
		cards, err = s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, cards)
		assert.Empty(t, cards)
	})
}
