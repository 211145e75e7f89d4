package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"personalsite/apperr"
	"personalsite/handlers"
	"personalsite/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errDown = errors.New("database is down")

// memStore backs all three resources in memory. failWrites makes every
// write return a persistence error.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	tasks      map[int64]models.Task
	groceries  map[int64]models.GroceryItem
	cards      map[int64]models.CollectionCard
	failWrites bool
	clock      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		tasks:     map[int64]models.Task{},
		groceries: map[int64]models.GroceryItem{},
		cards:     map[int64]models.CollectionCard{},
		clock:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) next() (int64, time.Time) {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	return m.nextID, m.clock
}

func (m *memStore) ListTasks(context.Context) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetTask(_ context.Context, id int64) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return t, apperr.NotFound("task", id)
	}
	return t, nil
}

func (m *memStore) CreateTask(_ context.Context, content string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return models.Task{}, apperr.Persistence("insert task", errDown)
	}
	id, now := m.next()
	t := models.Task{ID: id, Content: content, CreatedAt: now}
	m.tasks[id] = t
	return t, nil
}

func (m *memStore) UpdateTask(_ context.Context, id int64, content string) (models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return models.Task{}, apperr.Persistence("update task", errDown)
	}
	t, ok := m.tasks[id]
	if !ok {
		return t, apperr.NotFound("task", id)
	}
	t.Content = content
	m.tasks[id] = t
	return t, nil
}

func (m *memStore) DeleteTask(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return apperr.Persistence("delete task", errDown)
	}
	if _, ok := m.tasks[id]; !ok {
		return apperr.NotFound("task", id)
	}
	delete(m.tasks, id)
	return nil
}

func (m *memStore) ListGroceries(context.Context) ([]models.GroceryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.GroceryItem, 0, len(m.groceries))
	for _, g := range m.groceries {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetGrocery(_ context.Context, id int64) (models.GroceryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groceries[id]
	if !ok {
		return g, apperr.NotFound("grocery item", id)
	}
	return g, nil
}

func (m *memStore) CreateGrocery(_ context.Context, description, quantity string) (models.GroceryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return models.GroceryItem{}, apperr.Persistence("insert grocery item", errDown)
	}
	id, now := m.next()
	g := models.GroceryItem{ID: id, Description: description, Quantity: quantity, CreatedAt: now}
	m.groceries[id] = g
	return g, nil
}

func (m *memStore) UpdateGrocery(_ context.Context, id int64, description, quantity string) (models.GroceryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return models.GroceryItem{}, apperr.Persistence("update grocery item", errDown)
	}
	g, ok := m.groceries[id]
	if !ok {
		return g, apperr.NotFound("grocery item", id)
	}
	g.Description, g.Quantity = description, quantity
	m.groceries[id] = g
	return g, nil
}

func (m *memStore) DeleteGrocery(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return apperr.Persistence("delete grocery item", errDown)
	}
	if _, ok := m.groceries[id]; !ok {
		return apperr.NotFound("grocery item", id)
	}
	delete(m.groceries, id)
	return nil
}

func (m *memStore) ListCards(context.Context) ([]models.CollectionCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CollectionCard, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetCard(_ context.Context, id int64) (models.CollectionCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return c, apperr.NotFound("card", id)
	}
	return c, nil
}

func (m *memStore) CreateCard(_ context.Context, card models.CollectionCard) (models.CollectionCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return card, apperr.Persistence("insert card", errDown)
	}
	card.ID, card.CreatedAt = m.next()
	m.cards[card.ID] = card
	return card, nil
}

func (m *memStore) UpdateCardQuantity(_ context.Context, id int64, quantity int) (models.CollectionCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return models.CollectionCard{}, apperr.Persistence("update card", errDown)
	}
	c, ok := m.cards[id]
	if !ok {
		return c, apperr.NotFound("card", id)
	}
	c.Quantity = quantity
	m.cards[id] = c
	return c, nil
}

func (m *memStore) DeleteCard(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return apperr.Persistence("delete card", errDown)
	}
	if _, ok := m.cards[id]; !ok {
		return apperr.NotFound("card", id)
	}
	delete(m.cards, id)
	return nil
}

// fakeEnricher resolves names from a fixed table.
type fakeEnricher struct {
	cards     map[string]models.CollectionCard
	unmatched []string
	calls     int
}

func (f *fakeEnricher) Enrich(_ context.Context, name string, quantity int) (models.CollectionCard, []string, error) {
	f.calls++
	card, ok := f.cards[strings.ToLower(name)]
	if !ok {
		return models.CollectionCard{}, nil, apperr.Enrichment("No cards found matching that name", nil)
	}
	card.Quantity = quantity
	return card, f.unmatched, nil
}

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, store *memStore, enricher *fakeEnricher) http.Handler {
	t.Helper()
	view, err := handlers.NewRenderer()
	require.NoError(t, err)
	if enricher == nil {
		enricher = &fakeEnricher{}
	}
	return handlers.NewRouter(handlers.Deps{
		Log:       zap.NewNop().Sugar(),
		View:      view,
		Tasks:     store,
		Groceries: store,
		Cards:     store,
		Enricher:  enricher,
		DB:        pingFunc(func(context.Context) error { return nil }),
	})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
