package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/David-Langat/Maktaba/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Book, error)
	ByCategory(ctx context.Context, category string) ([]model.Book, error)
	SearchByName(ctx context.Context, pattern string) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `id, name, description, image, price, category, author, publisher, releaseyear`

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books
ORDER BY name`
	return r.query(ctx, q)
}

func (r *repo) ByCategory(ctx context.Context, category string) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books
WHERE category = $1
ORDER BY name`
	return r.query(ctx, q, category)
}

func (r *repo) SearchByName(ctx context.Context, pattern string) ([]model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books
WHERE name ILIKE '%' || $1 || '%'
ORDER BY name`
	return r.query(ctx, q, pattern)
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT ` + bookCols + `
FROM books
WHERE id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Image, &b.Price,
		&b.Category, &b.Author, &b.Publisher, &b.ReleaseYear,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
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
