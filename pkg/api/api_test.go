package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaxon/nc-tech-test/internal/testutil"
	"github.com/osaxon/nc-tech-test/pkg/api/types"
	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/store"
	"github.com/osaxon/nc-tech-test/pkg/store/file"
	"github.com/osaxon/nc-tech-test/pkg/store/sqlite"
)

const validBody = `{
  "title": "example title",
  "sizes": ["sm", "md", "gt"],
  "basePrice": 200,
  "template_id": "template001",
  "pages": [
    {"title": "Front Cover", "template": "template001"},
    {"title": "Inside Left", "template": "template002"}
  ]
}`

// newFileAPI returns an API over a freshly seeded file store.
func newFileAPI(t *testing.T) (*API, *file.FileStore) {
	t.Helper()
	s := file.New(file.Config{DataDir: testutil.WriteDataDir(t)})
	return New(s, s), s
}

func newSQLiteAPI(t *testing.T) (*API, *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	s, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "cards.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ReplaceAll(ctx, testutil.Cards(t)))
	require.NoError(t, s.ImportTemplates(ctx, testutil.Templates(t)))
	return New(s, s), s
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeCards(t *testing.T, rec *httptest.ResponseRecorder) []card.FormattedCard {
	t.Helper()
	var resp types.CardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Cards
}

func countCards(t *testing.T, s store.CardStore) int {
	t.Helper()
	cards, err := s.List(context.Background())
	require.NoError(t, err)
	return len(cards)
}

func TestHealth(t *testing.T) {
	a, _ := newFileAPI(t)
	a = New(a.cards, a.templates, WithVersion("1.2.3"))

	rec := do(t, a.Handler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestListCards(t *testing.T) {
	a, _ := newFileAPI(t)

	rec := do(t, a.Handler(), http.MethodGet, "/cards", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "{\n  \"cards\": ["), "response should be indented")

	cards := decodeCards(t, rec)
	assert.Equal(t, []card.FormattedCard{
		{Title: "card 1 title", ImageURL: "/front-cover-portrait-1.jpg", CardID: "card001"},
		{Title: "card 2 title", ImageURL: "/front-cover-portrait-2.jpg", CardID: "card002"},
		{Title: "card 3 title", ImageURL: "/front-cover-landscape-1.jpg", CardID: "card003"},
	}, cards)
}

func TestListCards_EmptyStore(t *testing.T) {
	a, s := newFileAPI(t)
	require.NoError(t, s.ReplaceAll(context.Background(), nil))

	rec := do(t, a.Handler(), http.MethodGet, "/cards", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cards": []}`, rec.Body.String())
}

func TestListCards_Filter(t *testing.T) {
	a, _ := newFileAPI(t)

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"price", "basePrice > 180", []string{"card001", "card003"}},
		{"size", `"md" in sizes`, []string{"card001", "card002"}},
		{"pages", "len(pages) == 2", []string{"card003"}},
		{"cover template", `pages[0].template == "template006"`, []string{"card002"}},
		{"none", `title == "nothing"`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, a.Handler(), http.MethodGet, "/cards?filter="+queryEscape(tt.filter), "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			ids := []string{}
			for _, c := range decodeCards(t, rec) {
				ids = append(ids, c.CardID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListCards_InvalidFilter(t *testing.T) {
	a, _ := newFileAPI(t)

	for _, filter := range []string{"basePrice >", "title", "unknownField == 1"} {
		t.Run(filter, func(t *testing.T) {
			rec := do(t, a.Handler(), http.MethodGet, "/cards?filter="+queryEscape(filter), "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Body.String(), "Invalid filter: "), rec.Body.String())
		})
	}
}

func TestListCards_StorageFailure(t *testing.T) {
	s := file.New(file.Config{DataDir: t.TempDir()})
	a := New(s, s)

	rec := do(t, a.Handler(), http.MethodGet, "/cards", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrMsgListCards, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "cards.json")
}

func TestGetCard(t *testing.T) {
	a, _ := newFileAPI(t)

	rec := do(t, a.Handler(), http.MethodGet, "/cards/card001", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got card.FormattedCard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "/front-cover-portrait-1.jpg", got.ImageURL)
	assert.Equal(t, "card 1 title", got.Title)
	assert.Equal(t, "card001", got.CardID)
}

func TestGetCard_NotFound(t *testing.T) {
	a, _ := newFileAPI(t)

	rec := do(t, a.Handler(), http.MethodGet, "/cards/doesnotexist", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Card not found", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestGetCard_MissingTemplatesFile(t *testing.T) {
	dir := testutil.WriteDataDir(t)
	s := file.New(file.Config{DataDir: dir, TemplatesFile: "absent.json"})
	a := New(s, s)

	rec := do(t, a.Handler(), http.MethodGet, "/cards/card001", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrMsgGetCard, rec.Body.String())
}

func TestSizeRouteRemoved(t *testing.T) {
	a, _ := newFileAPI(t)

	rec := do(t, a.Handler(), http.MethodGet, "/cards/card001/sm", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCard(t *testing.T) {
	a, s := newFileAPI(t)

	rec := do(t, a.Handler(), http.MethodDelete, "/cards/card001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Card card001 deleted", rec.Body.String())
	assert.Equal(t, 2, countCards(t, s))

	list := do(t, a.Handler(), http.MethodGet, "/cards", "")
	assert.Len(t, decodeCards(t, list), 2)

	rec = do(t, a.Handler(), http.MethodDelete, "/cards/card001", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Card not found", rec.Body.String())
}

func TestDeleteCard_WriteFailure(t *testing.T) {
	dir := testutil.WriteDataDir(t)
	s := file.New(file.Config{DataDir: dir, CardsFile: filepath.Join(dir, "nope", "cards.json")})
	a := New(s, s)

	rec := do(t, a.Handler(), http.MethodDelete, "/cards/card001", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrMsgDeleteCard, rec.Body.String())
}

func TestCreateCard(t *testing.T) {
	a, s := newFileAPI(t)
	before, err := s.List(context.Background())
	require.NoError(t, err)

	rec := do(t, a.Handler(), http.MethodPost, "/cards", validBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got card.FormattedCard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "example title", got.Title)
	assert.Equal(t, "/front-cover-portrait-1.jpg", got.ImageURL)
	assert.Equal(t, "card004", got.CardID)

	after, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	created := after[len(after)-1]
	assert.True(t, card.IsValidID(created.ID))
	n, ok := card.ParseSuffix(created.ID)
	require.True(t, ok)
	for _, c := range before {
		prev, _ := card.ParseSuffix(c.ID)
		assert.Greater(t, n, prev)
	}
	assert.Equal(t, []string{"sm", "md", "gt"}, created.Sizes)
	assert.Len(t, created.Pages, 2)
}

func TestCreateCard_ClientIDIgnored(t *testing.T) {
	a, s := newFileAPI(t)
	body := strings.Replace(validBody, `"title"`, `"id": "card001", "title"`, 1)

	rec := do(t, a.Handler(), http.MethodPost, "/cards", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c, err := s.Get(context.Background(), "card004")
	require.NoError(t, err)
	assert.Equal(t, "example title", c.Title)

	orig, err := s.Get(context.Background(), "card001")
	require.NoError(t, err)
	assert.Equal(t, "card 1 title", orig.Title)
}

func TestCreateCard_IDFollowsHighestRemaining(t *testing.T) {
	tests := []struct {
		name    string
		deleted string
		want    string
	}{
		{"gap in the middle is not filled", "card002", "card004"},
		{"highest removed", "card003", "card003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newFileAPI(t)

			require.Equal(t, http.StatusOK, do(t, a.Handler(), http.MethodDelete, "/cards/"+tt.deleted, "").Code)
			rec := do(t, a.Handler(), http.MethodPost, "/cards", validBody)
			require.Equal(t, http.StatusOK, rec.Code)

			var got card.FormattedCard
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got.CardID)
		})
	}
}

func TestCreateCard_EmptyStoreStartsAtCard001(t *testing.T) {
	a, s := newFileAPI(t)
	require.NoError(t, s.ReplaceAll(context.Background(), nil))

	rec := do(t, a.Handler(), http.MethodPost, "/cards", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	var got card.FormattedCard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "card001", got.CardID)
}

func TestCreateCard_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantPrefix string
		wantField  string
	}{
		{"malformed json", `{"title": `, ErrMsgInvalidJSON, ""},
		{"trailing data", validBody + `{}`, ErrMsgInvalidJSON, ""},
		{"not an object", `[1, 2]`, invalidCardPrefix, ""},
		{"missing title", `{"template_id": "template001", "sizes": [], "basePrice": 1, "pages": [{"title": "a", "template": "b"}]}`, invalidCardPrefix, "title"},
		{"wrong type", strings.Replace(validBody, `"basePrice": 200`, `"basePrice": "200"`, 1), invalidCardPrefix, "basePrice"},
		{"negative price", strings.Replace(validBody, `"basePrice": 200`, `"basePrice": -1`, 1), invalidCardPrefix, "basePrice"},
		{"no pages", `{"title": "t", "template_id": "template001", "sizes": [], "basePrice": 1, "pages": []}`, invalidCardPrefix, "pages"},
		{"unknown field", strings.Replace(validBody, `"basePrice": 200`, `"basePrice": 200, "colour": "red"`, 1), invalidCardPrefix, "colour"},
		{"unknown page field", strings.Replace(validBody, `"template": "template002"}`, `"template": "template002", "layout": "grid"}`, 1), invalidCardPrefix, "pages.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, s := newFileAPI(t)

			rec := do(t, a.Handler(), http.MethodPost, "/cards", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.wantPrefix), rec.Body.String())
			if tt.wantField != "" {
				assert.Contains(t, rec.Body.String(), tt.wantField)
			}
			assert.Equal(t, 3, countCards(t, s))
		})
	}
}

func TestCreateCard_BodyTooLarge(t *testing.T) {
	a, s := newFileAPI(t)
	body := `{"title": "` + strings.Repeat("x", MaxBodyBytes) + `"}`

	rec := do(t, a.Handler(), http.MethodPost, "/cards", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 3, countCards(t, s))
}

func TestCreateCard_StorageFailure(t *testing.T) {
	s := file.New(file.Config{DataDir: t.TempDir()})
	a := New(s, s)

	rec := do(t, a.Handler(), http.MethodPost, "/cards", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrMsgCreateCard, rec.Body.String())
}

func TestCreateCard_ConcurrentRequestsGetDistinctIDs(t *testing.T) {
	a, s := newFileAPI(t)
	h := a.Handler()

	const n = 20
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			req := httptest.NewRequest(http.MethodPost, "/cards", bytes.NewBufferString(validBody))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			var got card.FormattedCard
			_ = json.Unmarshal(rec.Body.Bytes(), &got)
			results <- got.CardID
		}()
	}

	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		id := <-results
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 3+n, countCards(t, s))
}

func TestSQLiteBackend(t *testing.T) {
	a, s := newSQLiteAPI(t)
	h := a.Handler()

	rec := do(t, h, http.MethodGet, "/cards/card001", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/front-cover-portrait-1.jpg")

	rec = do(t, h, http.MethodPost, "/cards", validBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"card_id": "card004"`)

	rec = do(t, h, http.MethodDelete, "/cards/card002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, countCards(t, s))

	rec = do(t, h, http.MethodGet, "/cards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ids := []string{}
	for _, c := range decodeCards(t, rec) {
		ids = append(ids, c.CardID)
	}
	assert.Equal(t, []string{"card001", "card003", "card004"}, ids)
}

func TestMethodNotAllowed(t *testing.T) {
	a, _ := newFileAPI(t)

	rec := do(t, a.Handler(), http.MethodPut, "/cards/card001", validBody)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
