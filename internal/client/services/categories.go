// Package services implements the local operations the UI layer works with:
// category and note CRUD on top of the repositories. The sync engine is a
// separate package; these services are its local collaborators.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/notelance/notelance/internal/client/models"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/common"
	"github.com/notelance/notelance/internal/dbx"
)

// CategoryService owns category CRUD and ordering. It holds the raw DB
// handle in addition to the repository so reordering can run inside a single
// transaction.
type CategoryService struct {
	db         *sql.DB
	categories categories.Repository
}

func NewCategoryService(db *sql.DB, repo categories.Repository) *CategoryService {
	return &CategoryService{db: db, categories: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Create adds a category at the end of the current order.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}

	existing, err := s.categories.GetByName(ctx, name)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("category %q already exists", name)
	}

	return s.categories.Create(ctx, categories.CreateParams{Name: name})
}

func (s *CategoryService) Rename(ctx context.Context, id int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}
	return s.categories.Update(ctx, id, categories.UpdateParams{Name: &name})
}

// Reorder rewrites order_index to match orderedIDs, which must be a
// permutation of the active category ids. Runs in one transaction so a
// failure never leaves the ordering non-contiguous.
func (s *CategoryService) Reorder(ctx context.Context, orderedIDs []int64) error {
	active, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(active) {
		return fmt.Errorf("reorder expects %d ids, got %d", len(active), len(orderedIDs))
	}

	known := make(map[int64]struct{}, len(active))
	for _, c := range active {
		known[c.ID] = struct{}{}
	}
	seen := make(map[int64]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("unknown category id %d", id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate category id %d", id)
		}
		seen[id] = struct{}{}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return categories.NewSQLiteRepository(tx).RenumberOrder(ctx, orderedIDs)
	})
}

// Delete soft-deletes the category, detaching its notes first.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.categories.SoftDelete(ctx, id)
}

// Purge removes the row entirely. Notes are detached, never deleted.
func (s *CategoryService) Purge(ctx context.Context, id int64) error {
	return s.categories.HardDelete(ctx, id)
}

func (s *CategoryService) NotesCount(ctx context.Context, id int64) (int, error) {
	return s.categories.NotesCount(ctx, id)
}
