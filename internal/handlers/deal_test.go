// internal/handlers/deal_test.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/uno/internal/game"
	"github.com/jason-s-yu/uno/internal/models"
	"github.com/jason-s-yu/uno/internal/store"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore records every saved deal.
type memoryStore struct {
	mu    sync.Mutex
	deals []models.Deal
}

func (s *memoryStore) SaveDeal(_ context.Context, d models.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = append(s.deals, d)
	return nil
}

func (s *memoryStore) LoadDeal(_ context.Context) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.deals) == 0 {
		return models.Deal{}, store.ErrNoDeal
	}
	return s.deals[len(s.deals)-1], nil
}

func (s *memoryStore) Close() error { return nil }

type failingStore struct{}

func (failingStore) SaveDeal(context.Context, models.Deal) error {
	return errors.New("disk full")
}
func (failingStore) LoadDeal(context.Context) (models.Deal, error) {
	return models.Deal{}, errors.New("disk on fire")
}
func (failingStore) Close() error { return nil }

func newTestRouter(t *testing.T, ds store.DealStore) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return NewRouter(logger, ds, t.TempDir())
}

func TestReshuffle(t *testing.T) {
	ms := &memoryStore{}
	router := newTestRouter(t, ms)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reshuffle", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success": true}`, w.Body.String())

	require.Len(t, ms.deals, 1)
	d := ms.deals[0]
	assert.Len(t, d.PlayerHand, game.HandSize)
	assert.Len(t, d.OpponentHand, game.HandSize)
	assert.False(t, d.TopCard.IsWild())
	assert.NotEqual(t, uuid.Nil, d.ID)
}

func TestReshuffleWrongMethod(t *testing.T) {
	ms := &memoryStore{}
	w := httptest.NewRecorder()
	newTestRouter(t, ms).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reshuffle", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	assert.Empty(t, ms.deals)
}

func TestReshuffleStoreFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	router := NewRouter(logger, failingStore{}, t.TempDir())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reshuffle", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body reshuffleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Error)

	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Message == "failed to persist deal" {
			logged = true
		}
	}
	assert.True(t, logged)
}

func TestReshuffleConcurrentDealsAreIndependent(t *testing.T) {
	ms := &memoryStore{}
	router := newTestRouter(t, ms)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reshuffle", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}
	wg.Wait()

	require.Len(t, ms.deals, n)
	ids := make(map[uuid.UUID]bool)
	for _, d := range ms.deals {
		ids[d.ID] = true
		seen := make(map[models.Card]int)
		for _, c := range append(append([]models.Card{}, d.PlayerHand...), d.OpponentHand...) {
			seen[c]++
		}
		seen[d.TopCard]++
		for c, count := range seen {
			assert.LessOrEqual(t, count, 4, "card %s dealt too often", c)
		}
	}
	assert.Len(t, ids, n)
}

func TestGetDeal(t *testing.T) {
	ms := &memoryStore{}
	router := newTestRouter(t, ms)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deal", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var notFound errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notFound))
	assert.NotEmpty(t, notFound.Error)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/reshuffle", nil))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deal", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got dealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, ms.deals[0].PlayerHand, got.Hand)
	assert.Equal(t, ms.deals[0].OpponentHand, got.OpponentHand)
	assert.Equal(t, ms.deals[0].TopCard, got.TopCard)
}

func TestGetDealStoreFailure(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, failingStore{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deal", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "failed to load deal"}`, w.Body.String())
}

func TestGetDealWrongMethod(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t, &memoryStore{}).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/deal", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
	assert.JSONEq(t, `{"error": "method not allowed"}`, w.Body.String())
}

func TestReshuffleWithFileStoreServesFiles(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	router := NewRouter(logger, fs, dir)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/reshuffle", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+store.TopCardFile, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var top models.Card
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &top))
	assert.False(t, top.IsWild())
}

func TestStaticFilesAndCORS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!doctype html><title>uno</title>"), 0o644))
	logger, _ := test.NewNullLogger()
	router := NewRouter(logger, &memoryStore{}, dir)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<!doctype html>")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
