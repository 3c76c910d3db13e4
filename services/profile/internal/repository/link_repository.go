package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/tx"
)

// LinkRepo handles CRUD operations on the links table. Every mutation is
// scoped to the owning user.
type LinkRepo struct{ DB *sql.DB }

const linkColumns = `id, user_id, title, url, icon, position, click_count, is_active, created_at, updated_at`

// List returns all links of a user in display order.
func (r *LinkRepo) List(ctx context.Context, userID string) ([]model.Link, error) {
	return r.query(ctx,
		`SELECT `+linkColumns+` FROM links WHERE user_id = $1 ORDER BY position, created_at`, userID)
}

// ListActive returns the links shown on the public page.
func (r *LinkRepo) ListActive(ctx context.Context, userID string) ([]model.Link, error) {
	return r.query(ctx,
		`SELECT `+linkColumns+` FROM links WHERE user_id = $1 AND is_active ORDER BY position, created_at`, userID)
}

func (r *LinkRepo) Get(ctx context.Context, userID, id string) (*model.Link, error) {
	links, err := r.query(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, model.ErrLinkNotFound
	}
	return &links[0], nil
}

// Create appends l after the user's last link.
func (r *LinkRepo) Create(ctx context.Context, l *model.Link) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	err := r.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO links (id, user_id, title, url, icon, position, is_active)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM links WHERE user_id = $2), $6)
		RETURNING position, click_count, created_at, updated_at
	`, l.ID, l.UserID, l.Title, l.URL, l.Icon, l.IsActive).
		Scan(&l.Position, &l.ClickCount, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

func (r *LinkRepo) Update(ctx context.Context, l *model.Link) error {
	res, err := r.conn(ctx).ExecContext(ctx, `
		UPDATE links SET title=$3, url=$4, icon=$5, position=$6, is_active=$7, updated_at=NOW()
		WHERE id=$1 AND user_id=$2
	`, l.ID, l.UserID, l.Title, l.URL, l.Icon, l.Position, l.IsActive)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrLinkNotFound)
}

func (r *LinkRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM links WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrLinkNotFound)
}

// IncrementClicks adds one click to an active link in a single statement
// and returns the owner and new count.
func (r *LinkRepo) IncrementClicks(ctx context.Context, id string) (*model.Link, error) {
	l := &model.Link{ID: id}
	err := r.conn(ctx).QueryRowContext(ctx, `
		UPDATE links SET click_count = click_count + 1
		WHERE id = $1 AND is_active
		RETURNING user_id, url, click_count
	`, id).Scan(&l.UserID, &l.URL, &l.ClickCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("increment clicks: %w", err)
	}
	return l, nil
}

// TotalClicks sums the click counts of all of a user's links.
func (r *LinkRepo) TotalClicks(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := r.conn(ctx).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(click_count), 0) FROM links WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

func (r *LinkRepo) query(ctx context.Context, q string, args ...any) ([]model.Link, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []model.Link{}
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.URL, &l.Icon, &l.Position,
			&l.ClickCount, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *LinkRepo) conn(ctx context.Context) tx.DBTX { return tx.Conn(ctx, r.DB) }
