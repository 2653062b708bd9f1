package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/notelance/notelance/internal/client/models"
	"github.com/notelance/notelance/internal/common"
	"github.com/notelance/notelance/internal/dbx"
	"github.com/notelance/notelance/internal/timex"
)

const noteColumns = "id, remote_id, title, content, category_id, created_at, updated_at, is_deleted"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		n          models.Note
		remoteID   sql.NullInt64
		categoryID sql.NullInt64
		createdAt  string
		updatedAt  string
		deleted    int
	)
	if err := row.Scan(&n.ID, &remoteID, &n.Title, &n.Content, &categoryID, &createdAt, &updatedAt, &deleted); err != nil {
		return nil, err
	}
	if remoteID.Valid {
		n.RemoteID = &remoteID.Int64
	}
	if categoryID.Valid {
		n.CategoryID = &categoryID.Int64
	}
	var err error
	if n.CreatedAt, err = timex.ParseUTC(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if n.UpdatedAt, err = timex.ParseUTC(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	n.IsDeleted = deleted != 0
	return &n, nil
}

func (r *SQLiteRepository) queryList(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Note, error) {
	n, err := scanNote(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Note, error) {
	return r.queryList(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE is_deleted != 1 ORDER BY updated_at DESC`)
}

func (r *SQLiteRepository) ListWithTrashed(ctx context.Context) ([]models.Note, error) {
	return r.queryList(ctx, `SELECT `+noteColumns+` FROM notes`)
}

func (r *SQLiteRepository) ListByCategory(ctx context.Context, categoryID *int64) ([]models.Note, error) {
	if categoryID == nil {
		return r.List(ctx)
	}
	return r.queryList(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE category_id = ? AND is_deleted != 1 ORDER BY updated_at DESC`,
		*categoryID)
}

func (r *SQLiteRepository) ListUncategorized(ctx context.Context) ([]models.Note, error) {
	return r.queryList(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE category_id IS NULL AND is_deleted != 1 ORDER BY updated_at DESC`)
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.Note, error) {
	term := "%" + query + "%"
	return r.queryList(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE (title LIKE ? OR content LIKE ?) AND is_deleted != 1
		 ORDER BY updated_at DESC`,
		term, term)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	return r.queryOne(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND is_deleted != 1 LIMIT 1`, id)
}

// GetByRemoteID looks up tombstones too: a soft-deleted row still owns its
// remote id binding.
func (r *SQLiteRepository) GetByRemoteID(ctx context.Context, remoteID int64) (*models.Note, error) {
	return r.queryOne(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE remote_id = ? LIMIT 1`, remoteID)
}

func (r *SQLiteRepository) Create(ctx context.Context, params CreateParams) (*models.Note, error) {
	now := timex.Now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (remote_id, title, content, category_id, created_at, updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		params.RemoteID, params.Title, params.Content, params.CategoryID,
		timex.FormatUTC(now), timex.FormatUTC(now))
	if err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted note id: %w", err)
	}

	return &models.Note{
		ID:         id,
		RemoteID:   params.RemoteID,
		Title:      params.Title,
		Content:    params.Content,
		CategoryID: params.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, params UpdateParams) (*models.Note, error) {
	var (
		sets []string
		args []any
	)

	if params.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *params.Title)
	}
	if params.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *params.Content)
	}
	if params.SetCategory {
		sets = append(sets, "category_id = ?")
		if params.CategoryID != nil {
			args = append(args, *params.CategoryID)
		} else {
			args = append(args, nil)
		}
	}
	if params.RemoteID != nil {
		sets = append(sets, "remote_id = ?")
		args = append(args, *params.RemoteID)
	}
	if params.IsDeleted != nil {
		sets = append(sets, "is_deleted = ?")
		args = append(args, boolToInt(*params.IsDeleted))
	}
	if params.CreatedAt != nil {
		sets = append(sets, "created_at = ?")
		args = append(args, timex.FormatUTC(*params.CreatedAt))
	}

	if len(sets) == 0 && params.UpdatedAt == nil {
		return nil, common.ErrorNoFieldsToUpdate
	}

	// updated_at is bumped on every edit unless the caller pins it
	// (the sync engine pins it when applying remote-authoritative fields
	// or binding a remote id, so the binding itself is not "an edit").
	if params.UpdatedAt != nil {
		sets = append(sets, "updated_at = ?")
		args = append(args, timex.FormatUTC(*params.UpdatedAt))
	} else {
		sets = append(sets, "updated_at = ?")
		args = append(args, timex.FormatUTC(timex.Now()))
	}

	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	// Re-read without the is_deleted filter: the update may have set it.
	return r.queryOne(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ? LIMIT 1`, id)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET is_deleted = 1, updated_at = ? WHERE id = ?`,
		timex.FormatUTC(timex.Now()), id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CountByCategory(ctx context.Context, categoryID *int64) (int, error) {
	var (
		n   int
		err error
	)
	if categoryID == nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM notes WHERE is_deleted != 1`).Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM notes WHERE category_id = ? AND is_deleted != 1`, *categoryID).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
