package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/notelance/notelance/internal/client/models"
	"github.com/notelance/notelance/internal/client/repositories/categories"
	"github.com/notelance/notelance/internal/client/repositories/notes"
	"github.com/notelance/notelance/internal/common"
)

// NoteService owns note CRUD. Category references are validated against
// active categories before they are stored.
type NoteService struct {
	notes      notes.Repository
	categories categories.Repository
}

func NewNoteService(noteRepo notes.Repository, categoryRepo categories.Repository) *NoteService {
	return &NoteService{notes: noteRepo, categories: categoryRepo}
}

func (s *NoteService) List(ctx context.Context) ([]models.Note, error) {
	return s.notes.List(ctx)
}

func (s *NoteService) ListByCategory(ctx context.Context, categoryID *int64) ([]models.Note, error) {
	return s.notes.ListByCategory(ctx, categoryID)
}

func (s *NoteService) Search(ctx context.Context, query string) ([]models.Note, error) {
	return s.notes.Search(ctx, query)
}

func (s *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *NoteService) checkCategory(ctx context.Context, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categories.GetByID(ctx, *categoryID)
	if errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("category %d does not exist", *categoryID)
	}
	return err
}

func (s *NoteService) Create(ctx context.Context, title, content string, categoryID *int64) (*models.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("note title must not be empty")
	}
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	return s.notes.Create(ctx, notes.CreateParams{
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
	})
}

// Edit updates title and/or content; nil leaves a field untouched.
func (s *NoteService) Edit(ctx context.Context, id int64, title, content *string) (*models.Note, error) {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, fmt.Errorf("note title must not be empty")
		}
		title = &trimmed
	}
	return s.notes.Update(ctx, id, notes.UpdateParams{Title: title, Content: content})
}

// Move attaches the note to another category, or detaches it when
// categoryID is nil.
func (s *NoteService) Move(ctx context.Context, id int64, categoryID *int64) (*models.Note, error) {
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.notes.Update(ctx, id, notes.UpdateParams{SetCategory: true, CategoryID: categoryID})
}

// Delete soft-deletes the note, keeping the tombstone for sync.
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.notes.SoftDelete(ctx, id)
}

// Purge removes the row entirely.
func (s *NoteService) Purge(ctx context.Context, id int64) error {
	return s.notes.HardDelete(ctx, id)
}
