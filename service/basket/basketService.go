package basketsvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/David-Langat/Maktaba/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrAlreadyInBasket ErrCode = "ALREADY_IN_BASKET"
	ErrNotInBasket     ErrCode = "NOT_IN_BASKET"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, or "" for uncoded (persistence) errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// View is the basket as shown to the visitor: the open order, its members,
// and a running total recomputed on every call.
type View struct {
	Order *model.Order `json:"order"`
	Books []model.Book `json:"books"`
	Total float64      `json:"total"`
}

type OrderRepo interface {
	Create(ctx context.Context) (*model.Order, error)
	GetOpen(ctx context.Context, id int64) (*model.Order, error)
	Books(ctx context.Context, orderID int64) ([]model.Book, error)
	AddBook(ctx context.Context, orderID, bookID int64) error
	RemoveBook(ctx context.Context, orderID, bookID int64) (bool, error)
	Total(ctx context.Context, orderID int64) (float64, error)
}

type CatalogRepo interface {
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type Sessions interface {
	OrderID(ctx context.Context, sessionID string) (int64, error)
	Bind(ctx context.Context, sessionID string, orderID int64) error
	Clear(ctx context.Context, sessionID string) error
}

type Service interface {
	// Current resolves the session's basket, creating and binding a fresh
	// open order when the slot is empty or stale.
	Current(ctx context.Context, sessionID string) (*View, error)

	// AddItem puts a catalog book into the basket. Adding a book that is
	// already a member signals ErrAlreadyInBasket and changes nothing.
	AddItem(ctx context.Context, sessionID string, bookID int64) (*View, error)

	// RemoveItem takes a book out of the basket; a book that is not a
	// member signals ErrNotInBasket.
	RemoveItem(ctx context.Context, sessionID string, bookID int64) (*View, error)

	// Clear drops the session's order slot. The open order row itself is
	// left behind, matching the store's abandonment semantics.
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	or   OrderRepo
	cat  CatalogRepo
	sess Sessions
}

func New(or OrderRepo, cat CatalogRepo, sess Sessions) Service {
	return &service{or: or, cat: cat, sess: sess}
}

func (s *service) Current(ctx context.Context, sessionID string) (*View, error) {
	order, err := s.resolveOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, order)
}

func (s *service) AddItem(ctx context.Context, sessionID string, bookID int64) (*View, error) {
	book, err := s.cat.Detail(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, makeErr(ErrBookNotFound)
	}

	order, err := s.resolveOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.or.AddBook(ctx, order.ID, book.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, makeErr(ErrAlreadyInBasket)
		}
		return nil, err
	}
	return s.view(ctx, order)
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, bookID int64) (*View, error) {
	order, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, makeErr(ErrNotInBasket)
	}

	removed, err := s.or.RemoveBook(ctx, order.ID, bookID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, makeErr(ErrNotInBasket)
	}
	return s.view(ctx, order)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.sess.Clear(ctx, sessionID)
}

// resolve returns the session's open order, or nil when the slot is empty
// or points at a missing/placed order.
func (s *service) resolve(ctx context.Context, sessionID string) (*model.Order, error) {
	id, err := s.sess.OrderID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	return s.or.GetOpen(ctx, id)
}

func (s *service) resolveOrCreate(ctx context.Context, sessionID string) (*model.Order, error) {
	order, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}

	order, err = s.or.Create(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sess.Bind(ctx, sessionID, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) view(ctx context.Context, order *model.Order) (*View, error) {
	books, err := s.or.Books(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.or.Total(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &View{Order: order, Books: books, Total: total}, nil
}

// isUniqueViolation reports a hit on the orderdetails (order_id, book_id)
// primary key.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
