package catalogsvc

import (
	"context"

	"github.com/David-Langat/Maktaba/model"
	bookrepo "github.com/David-Langat/Maktaba/repository/book"
)

type Book = model.Book

type Repo interface {
	List(ctx context.Context) ([]Book, error)
	ByCategory(ctx context.Context, category string) ([]Book, error)
	SearchByName(ctx context.Context, pattern string) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
}

var _ Repo = (bookrepo.Repo)(nil)

type Service interface {
	List(ctx context.Context) ([]Book, error)
	ByCategory(ctx context.Context, category string) ([]Book, error)
	Search(ctx context.Context, pattern string) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]Book, error) { return s.r.List(ctx) }

func (s *service) ByCategory(ctx context.Context, category string) ([]Book, error) {
	if category == "" {
		return s.r.List(ctx)
	}
	return s.r.ByCategory(ctx, category)
}

func (s *service) Search(ctx context.Context, pattern string) ([]Book, error) {
	if pattern == "" {
		return s.r.List(ctx)
	}
	return s.r.SearchByName(ctx, pattern)
}

func (s *service) Detail(ctx context.Context, id int64) (*Book, error) { return s.r.Detail(ctx, id) }
