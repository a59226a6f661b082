package main

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/godamri/helix-problem/database"
	"github.com/godamri/helix-problem/http/binding"
	"github.com/godamri/helix-problem/http/response"
	"github.com/godamri/helix-problem/problem"
)

type item struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
}

// itemStore is an in-memory table that fails the way a Postgres table does,
// so handlers exercise the same error mapping they would against pgx.
type itemStore struct {
	mu     sync.RWMutex
	byID   map[string]item
	byName map[string]string
}

func newItemStore() *itemStore {
	return &itemStore{byID: map[string]item{}, byName: map[string]string{}}
}

func (s *itemStore) get(id string) (item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.byID[id]
	if !ok {
		return item{}, pgx.ErrNoRows
	}
	return it, nil
}

func (s *itemStore) insert(it item) (item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[it.Name]; ok {
		return item{}, &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"items_name_key\""}
	}
	it.ID = uuid.NewString()
	s.byID[it.ID] = it
	s.byName[it.Name] = it.ID
	return it, nil
}

type itemHandlers struct {
	store   *itemStore
	decoder *binding.Decoder
}

// lookup serves GET /items?id=. Store errors are mapped to status codes only.
func (h *itemHandlers) lookup(w http.ResponseWriter, r *http.Request) error {
	id, err := binding.RequiredQuery(r, "id")
	if err != nil {
		return err
	}
	it, err := h.store.get(id)
	if err != nil {
		return database.MapError(err)
	}
	response.JSON(w, r, http.StatusOK, it)
	return nil
}

// show serves GET /items/{id} and reports a miss as a typed problem.
func (h *itemHandlers) show(w http.ResponseWriter, r *http.Request) error {
	id, err := binding.RequiredPathParam(r, "id")
	if err != nil {
		return err
	}
	it, err := h.store.get(id)
	if database.IsNoRows(err) {
		return problem.New(
			problem.WithType("https://problems.helix.dev/item-not-found"),
			problem.WithTitle("Item not found"),
			problem.WithStatus(problem.StatusOf(http.StatusNotFound)),
			problem.WithDetail(fmt.Sprintf("item %s does not exist", id)),
			problem.WithInstance(r.URL.Path),
			problem.WithParameter("itemId", id),
			problem.WithCause(err),
			problem.WithStack(),
		)
	}
	if err != nil {
		return database.MapError(err)
	}
	response.JSON(w, r, http.StatusOK, it)
	return nil
}

// create serves POST /items. It requires an X-Tenant header.
func (h *itemHandlers) create(w http.ResponseWriter, r *http.Request) error {
	if _, err := binding.RequiredHeader(r, "X-Tenant"); err != nil {
		return err
	}
	var in item
	if err := h.decoder.DecodeJSON(w, r, &in); err != nil {
		return err
	}
	it, err := h.store.insert(in)
	if err != nil {
		return database.MapError(err)
	}
	response.JSON(w, r, http.StatusCreated, it)
	return nil
}
