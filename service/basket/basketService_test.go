// service/basket/basket_service_test.go
package basketsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/David-Langat/Maktaba/model"
	basketsvc "github.com/David-Langat/Maktaba/service/basket"
)

// fakeStore backs all three collaborator interfaces with maps, behaving like
// the real Postgres/Redis pair: the association table is a set guarded by a
// composite key, the session store holds one order id per visitor.
type fakeStore struct {
	nextID   int64
	orders   map[int64]*model.Order
	members  map[int64]map[int64]bool
	books    map[int64]model.Book
	sessions map[string]int64

	createErr error
	addErr    error
}

func newFakeStore(books ...model.Book) *fakeStore {
	f := &fakeStore{
		orders:   map[int64]*model.Order{},
		members:  map[int64]map[int64]bool{},
		books:    map[int64]model.Book{},
		sessions: map[string]int64{},
	}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

// OrderRepo

func (f *fakeStore) Create(ctx context.Context) (*model.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	o := &model.Order{ID: f.nextID}
	f.orders[o.ID] = o
	f.members[o.ID] = map[int64]bool{}
	return o, nil
}

func (f *fakeStore) GetOpen(ctx context.Context, id int64) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok || o.Status {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) Books(ctx context.Context, orderID int64) ([]model.Book, error) {
	var out []model.Book
	for id := range f.members[orderID] {
		out = append(out, f.books[id])
	}
	return out, nil
}

func (f *fakeStore) AddBook(ctx context.Context, orderID, bookID int64) error {
	if f.addErr != nil {
		return f.addErr
	}
	if f.members[orderID][bookID] {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	f.members[orderID][bookID] = true
	return nil
}

func (f *fakeStore) RemoveBook(ctx context.Context, orderID, bookID int64) (bool, error) {
	if !f.members[orderID][bookID] {
		return false, nil
	}
	delete(f.members[orderID], bookID)
	return true, nil
}

func (f *fakeStore) Total(ctx context.Context, orderID int64) (float64, error) {
	var total float64
	for id := range f.members[orderID] {
		total += f.books[id].Price
	}
	return total, nil
}

// CatalogRepo

func (f *fakeStore) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// Sessions

func (f *fakeStore) OrderID(ctx context.Context, sessionID string) (int64, error) {
	return f.sessions[sessionID], nil
}

func (f *fakeStore) Bind(ctx context.Context, sessionID string, orderID int64) error {
	f.sessions[sessionID] = orderID
	return nil
}

func (f *fakeStore) Clear(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func newService(f *fakeStore) basketsvc.Service { return basketsvc.New(f, f, f) }

var dune = model.Book{ID: 1, Name: "Dune", Price: 12.50}
var hobbit = model.Book{ID: 2, Name: "The Hobbit", Price: 9.99}

func TestCurrent_FreshSessionCreatesOneOpenOrder(t *testing.T) {
	f := newFakeStore(dune)
	s := newService(f)

	view, err := s.Current(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view.Order == nil || view.Order.Status {
		t.Fatalf("want a fresh open order, got %+v", view.Order)
	}
	if len(view.Books) != 0 || view.Total != 0 {
		t.Fatalf("fresh basket not empty: books=%d total=%v", len(view.Books), view.Total)
	}
	if len(f.orders) != 1 {
		t.Fatalf("want exactly one order created, got %d", len(f.orders))
	}

	// a second view reuses the bound order
	again, err := s.Current(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Current again: %v", err)
	}
	if again.Order.ID != view.Order.ID || len(f.orders) != 1 {
		t.Fatalf("second view created another order: %+v", again.Order)
	}
}

func TestCurrent_StaleReferenceStartsFresh(t *testing.T) {
	f := newFakeStore()
	s := newService(f)

	f.sessions["s1"] = 99 // points at an order that no longer exists

	view, err := s.Current(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view.Order.ID == 99 {
		t.Fatal("stale reference was not replaced")
	}
	if f.sessions["s1"] != view.Order.ID {
		t.Fatalf("session not rebound: slot=%d order=%d", f.sessions["s1"], view.Order.ID)
	}
}

func TestCurrent_CreateFailureReturnsNoOrder(t *testing.T) {
	f := newFakeStore()
	f.createErr = errors.New("db down")
	s := newService(f)

	view, err := s.Current(context.Background(), "s1")
	if err == nil {
		t.Fatal("expected error when creation cannot be committed")
	}
	if view != nil {
		t.Fatalf("no view should be returned on failure, got %+v", view)
	}
	if basketsvc.Code(err) != "" {
		t.Fatalf("persistence failures stay uncoded, got %q", basketsvc.Code(err))
	}
}

func TestAddItem_UnknownBook(t *testing.T) {
	f := newFakeStore(dune)
	s := newService(f)

	if _, err := s.Current(context.Background(), "s1"); err != nil {
		t.Fatalf("Current: %v", err)
	}

	_, err := s.AddItem(context.Background(), "s1", 404)
	if basketsvc.Code(err) != basketsvc.ErrBookNotFound {
		t.Fatalf("want BOOK_NOT_FOUND, got %v", err)
	}
	if len(f.members[f.sessions["s1"]]) != 0 {
		t.Fatal("book set mutated by failed add")
	}
}

func TestAddItem_DuplicateIsIdempotent(t *testing.T) {
	f := newFakeStore(dune)
	s := newService(f)

	view, err := s.AddItem(context.Background(), "s1", dune.ID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if len(view.Books) != 1 || view.Total != 12.50 {
		t.Fatalf("after first add: books=%d total=%v", len(view.Books), view.Total)
	}

	_, err = s.AddItem(context.Background(), "s1", dune.ID)
	if basketsvc.Code(err) != basketsvc.ErrAlreadyInBasket {
		t.Fatalf("want ALREADY_IN_BASKET, got %v", err)
	}

	after, err := s.Current(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(after.Books) != 1 || after.Total != 12.50 {
		t.Fatalf("duplicate add changed the set: books=%d total=%v", len(after.Books), after.Total)
	}
}

func TestRemoveItem_RoundTrip(t *testing.T) {
	f := newFakeStore(dune, hobbit)
	s := newService(f)
	ctx := context.Background()

	if _, err := s.AddItem(ctx, "s1", dune.ID); err != nil {
		t.Fatalf("add dune: %v", err)
	}
	if _, err := s.AddItem(ctx, "s1", hobbit.ID); err != nil {
		t.Fatalf("add hobbit: %v", err)
	}

	view, err := s.RemoveItem(ctx, "s1", dune.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Books) != 1 || view.Books[0].ID != hobbit.ID {
		t.Fatalf("want {hobbit}, got %+v", view.Books)
	}
	if view.Total != hobbit.Price {
		t.Fatalf("total = %v, want %v", view.Total, hobbit.Price)
	}
}

func TestRemoveItem_NotAMember(t *testing.T) {
	f := newFakeStore(dune)
	s := newService(f)

	if _, err := s.Current(context.Background(), "s1"); err != nil {
		t.Fatalf("Current: %v", err)
	}

	_, err := s.RemoveItem(context.Background(), "s1", dune.ID)
	if basketsvc.Code(err) != basketsvc.ErrNotInBasket {
		t.Fatalf("want NOT_IN_BASKET, got %v", err)
	}
}

func TestClear_DropsSlotButKeepsOrderRow(t *testing.T) {
	f := newFakeStore(dune)
	s := newService(f)
	ctx := context.Background()

	view, err := s.AddItem(ctx, "s1", dune.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Clear(ctx, "s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, bound := f.sessions["s1"]; bound {
		t.Fatal("session slot survived Clear")
	}
	if _, exists := f.orders[view.Order.ID]; !exists {
		t.Fatal("order row was deleted; it should only be abandoned")
	}

	// next interaction starts a fresh basket
	fresh, err := s.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("Current after clear: %v", err)
	}
	if fresh.Order.ID == view.Order.ID {
		t.Fatal("cleared basket was resurrected")
	}
	if fresh.Total != 0 {
		t.Fatalf("fresh basket total = %v, want 0", fresh.Total)
	}
}
