package checkoutsvc

import (
	"context"
	"errors"
	"time"

	"github.com/David-Langat/Maktaba/model"
	orderrepo "github.com/David-Langat/Maktaba/repository/order"
)

// errors used by controllers

type ErrCode string

// ErrNoOpenOrder covers every "nothing to check out" case: empty session
// slot, stale slot, or an order that was placed in the meantime.
const ErrNoOpenOrder ErrCode = "NO_OPEN_ORDER"

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

type Contact = orderrepo.Contact

// View is the order presented on the checkout page with its running total.
type View struct {
	Order *model.Order `json:"order"`
	Books []model.Book `json:"books"`
	Total float64      `json:"total"`
}

type Repo interface {
	GetOpen(ctx context.Context, id int64) (*model.Order, error)
	Books(ctx context.Context, orderID int64) ([]model.Book, error)
	Total(ctx context.Context, orderID int64) (float64, error)
	Place(ctx context.Context, orderID int64, c Contact, at time.Time) (float64, bool, error)
}

type Sessions interface {
	OrderID(ctx context.Context, sessionID string) (int64, error)
	Clear(ctx context.Context, sessionID string) error
}

type Service interface {
	// Current returns the order eligible for checkout, or ErrNoOpenOrder.
	Current(ctx context.Context, sessionID string) (*View, error)

	// Place runs the open -> placed transition: contact fields and a total
	// snapshotted from current catalog prices are committed atomically,
	// then the session slot is dropped so the next basket action starts
	// fresh. The transition is one-way and single-shot per order.
	Place(ctx context.Context, sessionID string, c Contact) (*model.Order, error)
}

type service struct {
	r    Repo
	sess Sessions
	now  func() time.Time
}

func New(r Repo, sess Sessions) Service {
	return &service{r: r, sess: sess, now: time.Now}
}

func (s *service) Current(ctx context.Context, sessionID string) (*View, error) {
	order, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	books, err := s.r.Books(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.r.Total(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &View{Order: order, Books: books, Total: total}, nil
}

func (s *service) Place(ctx context.Context, sessionID string, c Contact) (*model.Order, error) {
	order, err := s.resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	at := s.now().UTC()
	total, ok, err := s.r.Place(ctx, order.ID, c, at)
	if err != nil {
		// commit failed: the order stays open, nothing partial is visible
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrNoOpenOrder)
	}

	// A failed Clear leaves a stale slot; resolve filters placed orders,
	// so the next basket action still starts a fresh order.
	_ = s.sess.Clear(ctx, sessionID)

	order.Status = true
	order.FirstName = c.FirstName
	order.Surname = c.Surname
	order.Email = c.Email
	order.Phone = c.Phone
	order.TotalCost = total
	order.Date = at
	return order, nil
}

func (s *service) resolve(ctx context.Context, sessionID string) (*model.Order, error) {
	id, err := s.sess.OrderID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, makeErr(ErrNoOpenOrder)
	}
	order, err := s.r.GetOpen(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, makeErr(ErrNoOpenOrder)
	}
	return order, nil
}
