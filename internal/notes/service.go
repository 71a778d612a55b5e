package notes

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"example.com/notes-web/internal/apperr"
	"example.com/notes-web/internal/stringsx"
)

// MaxContentLen bounds note content. The column is unbounded text; the
// limit exists to keep a single form post from ballooning the page.
const MaxContentLen = 10000

// Repo is the storage dependency of Service. It is satisfied by
// *Repository and stubbed in unit tests.
type Repo interface {
	Create(ctx context.Context, content string) (Note, error)
	Get(ctx context.Context, id int64) (Note, error)
	Update(ctx context.Context, id int64, content string) (Note, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Note, error)
	Count(ctx context.Context) (int64, error)
}

// Service validates input and translates storage errors into the
// application taxonomy. Handlers never see sql.ErrNoRows.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, content string) (Note, error) {
	content, err := cleanContent(content)
	if err != nil {
		return Note{}, err
	}
	return s.repo.Create(ctx, content)
}

func (s *Service) Get(ctx context.Context, id int64) (Note, error) {
	n, err := s.repo.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, apperr.ErrNotFound
	}
	return n, err
}

func (s *Service) Update(ctx context.Context, id int64, content string) (Note, error) {
	content, err := cleanContent(content)
	if err != nil {
		return Note{}, err
	}
	n, err := s.repo.Update(ctx, id, content)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, apperr.ErrNotFound
	}
	return n, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *Service) List(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func cleanContent(content string) (string, error) {
	if stringsx.IsEmpty(content) {
		return "", apperr.ErrEmptyContent
	}
	content = strings.TrimSpace(content)
	if len(content) > MaxContentLen {
		return "", apperr.ErrContentTooLong
	}
	return content, nil
}
