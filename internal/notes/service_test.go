package notes

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/notes-web/internal/apperr"
)

type stubRepo struct {
	createFn func(context.Context, string) (Note, error)
	getFn    func(context.Context, int64) (Note, error)
	updateFn func(context.Context, int64, string) (Note, error)
	deleteFn func(context.Context, int64) error
	listFn   func(context.Context) ([]Note, error)
	countFn  func(context.Context) (int64, error)
}

func (s stubRepo) Create(ctx context.Context, content string) (Note, error) {
	return s.createFn(ctx, content)
}
func (s stubRepo) Get(ctx context.Context, id int64) (Note, error) { return s.getFn(ctx, id) }
func (s stubRepo) Update(ctx context.Context, id int64, content string) (Note, error) {
	return s.updateFn(ctx, id, content)
}
func (s stubRepo) Delete(ctx context.Context, id int64) error { return s.deleteFn(ctx, id) }
func (s stubRepo) List(ctx context.Context) ([]Note, error)   { return s.listFn(ctx) }
func (s stubRepo) Count(ctx context.Context) (int64, error)   { return s.countFn(ctx) }

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(stubRepo{
		createFn: func(_ context.Context, content string) (Note, error) {
			return Note{ID: 1, Content: content}, nil
		},
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "")
		require.ErrorIs(t, err, apperr.ErrEmptyContent)
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "  \n\t ")
		require.ErrorIs(t, err, apperr.ErrEmptyContent)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := svc.Create(context.Background(), strings.Repeat("x", MaxContentLen+1))
		require.ErrorIs(t, err, apperr.ErrContentTooLong)
	})

	t.Run("content is trimmed before storage", func(t *testing.T) {
		n, err := svc.Create(context.Background(), "  Buy milk \n")
		require.NoError(t, err)
		require.Equal(t, "Buy milk", n.Content)
	})
}

func TestService_Get(t *testing.T) {
	fixed := time.Unix(1, 0).UTC()

	t.Run("found", func(t *testing.T) {
		svc := NewService(stubRepo{
			getFn: func(_ context.Context, id int64) (Note, error) {
				require.Equal(t, int64(7), id)
				return Note{ID: 7, Content: "c", CreatedAt: fixed, UpdatedAt: fixed}, nil
			},
		})
		n, err := svc.Get(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, int64(7), n.ID)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		svc := NewService(stubRepo{
			getFn: func(context.Context, int64) (Note, error) { return Note{}, sql.ErrNoRows },
		})
		_, err := svc.Get(context.Background(), 999)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		svc := NewService(stubRepo{
			getFn: func(context.Context, int64) (Note, error) { return Note{}, boom },
		})
		_, err := svc.Get(context.Background(), 1)
		require.ErrorIs(t, err, boom)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("empty content rejected before storage", func(t *testing.T) {
		svc := NewService(stubRepo{
			updateFn: func(context.Context, int64, string) (Note, error) {
				t.Fatal("repo must not be called")
				return Note{}, nil
			},
		})
		_, err := svc.Update(context.Background(), 1, " ")
		require.ErrorIs(t, err, apperr.ErrEmptyContent)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		svc := NewService(stubRepo{
			updateFn: func(context.Context, int64, string) (Note, error) { return Note{}, sql.ErrNoRows },
		})
		_, err := svc.Update(context.Background(), 999, "c")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("success with trimmed content", func(t *testing.T) {
		svc := NewService(stubRepo{
			updateFn: func(_ context.Context, id int64, content string) (Note, error) {
				require.Equal(t, "Buy oat milk", content)
				return Note{ID: id, Content: content}, nil
			},
		})
		n, err := svc.Update(context.Background(), 1, " Buy oat milk ")
		require.NoError(t, err)
		require.Equal(t, "Buy oat milk", n.Content)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("no rows maps to not found", func(t *testing.T) {
		svc := NewService(stubRepo{
			deleteFn: func(context.Context, int64) error { return sql.ErrNoRows },
		})
		require.ErrorIs(t, svc.Delete(context.Background(), 999), apperr.ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc := NewService(stubRepo{
			deleteFn: func(context.Context, int64) error { return nil },
		})
		require.NoError(t, svc.Delete(context.Background(), 1))
	})
}

func TestService_ListAndCount_PassThrough(t *testing.T) {
	fixed := time.Unix(2, 0).UTC()
	svc := NewService(stubRepo{
		listFn: func(context.Context) ([]Note, error) {
			return []Note{{ID: 2, Content: "b", CreatedAt: fixed, UpdatedAt: fixed}}, nil
		},
		countFn: func(context.Context) (int64, error) { return 1, nil },
	})

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	total, err := svc.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}
