// repository/order/orderRepository.go
package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/David-Langat/Maktaba/model"
)

// Contact is the customer data frozen onto an order at placement.
type Contact struct {
	FirstName string
	Surname   string
	Email     string
	Phone     string
}

type Repo interface {
	// Create inserts a fresh open order with empty contact fields and zero total.
	Create(ctx context.Context) (*model.Order, error)

	// GetOpen returns the order only while it exists and is still open;
	// a missing or already placed order yields (nil, nil).
	GetOpen(ctx context.Context, id int64) (*model.Order, error)

	// Books lists the order's current members.
	Books(ctx context.Context, orderID int64) ([]model.Book, error)

	// AddBook inserts a membership row; the (order_id, book_id) primary key
	// rejects duplicates with a unique violation.
	AddBook(ctx context.Context, orderID, bookID int64) error

	// RemoveBook deletes a membership row and reports whether one existed.
	RemoveBook(ctx context.Context, orderID, bookID int64) (bool, error)

	// Total sums the current members' catalog prices.
	Total(ctx context.Context, orderID int64) (float64, error)

	// Place flips the order to placed in a single transaction: contact fields,
	// placement timestamp, and a total snapshotted from current catalog prices.
	// ok is false when the order was missing or no longer open.
	Place(ctx context.Context, orderID int64, c Contact, at time.Time) (total float64, ok bool, err error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context) (*model.Order, error) {
	const q = `
INSERT INTO orders (status, firstname, surname, email, phone, totalcost, date)
VALUES (FALSE, '', '', '', '', 0, $1)
RETURNING id`
	now := time.Now().UTC()
	var id int64
	if err := r.db.QueryRowContext(ctx, q, now).Scan(&id); err != nil {
		return nil, err
	}
	return &model.Order{ID: id, Date: now}, nil
}

func (r *repo) GetOpen(ctx context.Context, id int64) (*model.Order, error) {
	const q = `
SELECT id, status, firstname, surname, email, phone, totalcost, date
FROM orders
WHERE id = $1 AND status = FALSE`
	var o model.Order
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&o.ID, &o.Status, &o.FirstName, &o.Surname, &o.Email, &o.Phone, &o.TotalCost, &o.Date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) Books(ctx context.Context, orderID int64) ([]model.Book, error) {
	const q = `
SELECT b.id, b.name, b.description, b.image, b.price, b.category, b.author, b.publisher, b.releaseyear
FROM orderdetails od
JOIN books b ON b.id = od.book_id
WHERE od.order_id = $1
ORDER BY b.name`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Description, &b.Image, &b.Price,
			&b.Category, &b.Author, &b.Publisher, &b.ReleaseYear,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) AddBook(ctx context.Context, orderID, bookID int64) error {
	const q = `INSERT INTO orderdetails (order_id, book_id) VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, q, orderID, bookID)
	return err
}

func (r *repo) RemoveBook(ctx context.Context, orderID, bookID int64) (bool, error) {
	const q = `DELETE FROM orderdetails WHERE order_id = $1 AND book_id = $2`
	res, err := r.db.ExecContext(ctx, q, orderID, bookID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Total(ctx context.Context, orderID int64) (float64, error) {
	const q = `
SELECT COALESCE(SUM(b.price), 0)
FROM orderdetails od
JOIN books b ON b.id = od.book_id
WHERE od.order_id = $1`
	var total float64
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(&total)
	return total, err
}

func (r *repo) Place(ctx context.Context, orderID int64, c Contact, at time.Time) (total float64, ok bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const sum = `
SELECT COALESCE(SUM(b.price), 0)
FROM orderdetails od
JOIN books b ON b.id = od.book_id
WHERE od.order_id = $1`
	if err = tx.QueryRowContext(ctx, sum, orderID).Scan(&total); err != nil {
		return 0, false, err
	}

	// status guard makes the transition single-shot under concurrent submits
	const upd = `
UPDATE orders
SET status = TRUE,
    firstname = $2,
    surname = $3,
    email = $4,
    phone = $5,
    totalcost = $6,
    date = $7
WHERE id = $1 AND status = FALSE`
	res, err := tx.ExecContext(ctx, upd, orderID, c.FirstName, c.Surname, c.Email, c.Phone, total, at)
	if err != nil {
		return 0, false, err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		_ = tx.Rollback()
		return 0, false, nil
	}

	if err = tx.Commit(); err != nil {
		return 0, false, err
	}
	return total, true, nil
}
