package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaxon/nc-tech-test/internal/testutil"
	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/store"
	"github.com/osaxon/nc-tech-test/pkg/store/storetest"
)

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New(testutil.Cards(t), testutil.Templates(t))
	})
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New(testutil.Cards(t), testutil.Templates(t))
	ctx := context.Background()

	cards, err := s.List(ctx)
	require.NoError(t, err)
	cards[0].Title = "mutated"
	cards[0].Sizes[0] = "xx"

	got, err := s.Get(ctx, "card001")
	require.NoError(t, err)
	assert.Equal(t, "card 1 title", got.Title)
	assert.Equal(t, "sm", got.Sizes[0])
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.Put(ctx, card.Card{ID: card.FormatID(n)})
			_, _ = s.List(ctx)
		}(i)
	}
	wg.Wait()

	cards, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 50)
}
