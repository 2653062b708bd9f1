package categories

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

const categoryColumns = "id, remote_id, name, order_index, created_at, updated_at, is_deleted"

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

func scanCategory(row rowScanner) (*models.Category, error) {
	var (
		c         models.Category
		remoteID  sql.NullInt64
		createdAt string
		updatedAt string
		deleted   int
	)
	if err := row.Scan(&c.ID, &remoteID, &c.Name, &c.OrderIndex, &createdAt, &updatedAt, &deleted); err != nil {
		return nil, err
	}
	if remoteID.Valid {
		c.RemoteID = &remoteID.Int64
	}
	var err error
	if c.CreatedAt, err = timex.ParseUTC(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if c.UpdatedAt, err = timex.ParseUTC(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	c.IsDeleted = deleted != 0
	return &c, nil
}

func (r *SQLiteRepository) queryList(ctx context.Context, query string, args ...any) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Category, error) {
	return r.queryList(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE is_deleted != 1 ORDER BY order_index ASC`)
}

func (r *SQLiteRepository) ListWithTrashed(ctx context.Context) ([]models.Category, error) {
	return r.queryList(ctx, `SELECT `+categoryColumns+` FROM categories`)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return r.queryOne(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND is_deleted != 1 LIMIT 1`, id)
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return r.queryOne(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) = LOWER(?) AND is_deleted != 1 LIMIT 1`,
		strings.TrimSpace(name))
}

// GetByRemoteID looks up tombstones too: a soft-deleted row still owns its
// remote id binding.
func (r *SQLiteRepository) GetByRemoteID(ctx context.Context, remoteID int64) (*models.Category, error) {
	return r.queryOne(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE remote_id = ? LIMIT 1`, remoteID)
}

func (r *SQLiteRepository) nextOrder(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_index), -1) + 1 FROM categories`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next order_index: %w", err)
	}
	return next, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, params CreateParams) (*models.Category, error) {
	order := 0
	if params.OrderIndex != nil {
		order = *params.OrderIndex
	} else {
		var err error
		if order, err = r.nextOrder(ctx); err != nil {
			return nil, err
		}
	}

	now := timex.Now()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (remote_id, name, order_index, created_at, updated_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, 0)`,
		params.RemoteID, params.Name, order, timex.FormatUTC(now), timex.FormatUTC(now))
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted category id: %w", err)
	}

	return &models.Category{
		ID:         id,
		RemoteID:   params.RemoteID,
		Name:       params.Name,
		OrderIndex: order,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, params UpdateParams) (*models.Category, error) {
	var (
		sets []string
		args []any
	)

	if params.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *params.Name)
	}
	if params.OrderIndex != nil {
		sets = append(sets, "order_index = ?")
		args = append(args, *params.OrderIndex)
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
	// or binding a remote id, so those writes are not "local edits").
	if params.UpdatedAt != nil {
		sets = append(sets, "updated_at = ?")
		args = append(args, timex.FormatUTC(*params.UpdatedAt))
	} else {
		sets = append(sets, "updated_at = ?")
		args = append(args, timex.FormatUTC(timex.Now()))
	}

	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	// Re-read without the is_deleted filter: the update may have set it.
	return r.queryOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ? LIMIT 1`, id)
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id int64) error {
	now := timex.FormatUTC(timex.Now())

	if err := r.detachNotes(ctx, id, now); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET is_deleted = 1, updated_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return fmt.Errorf("failed to soft-delete category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, id int64) error {
	now := timex.FormatUTC(timex.Now())

	if err := r.detachNotes(ctx, id, now); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// detachNotes clears category_id on every note referencing the category, so
// no note is ever left dangling.
func (r *SQLiteRepository) detachNotes(ctx context.Context, id int64, now string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET category_id = NULL, updated_at = ? WHERE category_id = ?`, now, id)
	if err != nil {
		return fmt.Errorf("failed to detach notes: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RenumberOrder(ctx context.Context, orderedIDs []int64) error {
	now := timex.FormatUTC(timex.Now())

	for i, id := range orderedIDs {
		_, err := r.db.ExecContext(ctx,
			`UPDATE categories SET order_index = ?, updated_at = ? WHERE id = ?`, i, now, id)
		if err != nil {
			return fmt.Errorf("failed to renumber category %d: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) NotesCount(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE category_id = ? AND is_deleted != 1`, id).Scan(&n)
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
