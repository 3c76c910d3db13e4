package outbox

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/linkiq/linkiq/services/profile/internal/tx"
)

// Row represents a single unpublished outbox entry.
type Row struct {
	ID      string
	Topic   string
	Key     string
	Payload []byte
}

// Repository manages the transactional outbox table.
type Repository struct{ DB *sql.DB }

func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

const insertQuery = `INSERT INTO outbox (id, topic, key, payload) VALUES ($1,$2,$3,$4)`

// Add records an event keyed by the aggregate it concerns, so the broker
// keeps per-user ordering. It joins the transaction carried by ctx, if any.
func (r *Repository) Add(ctx context.Context, topic, key string, payload []byte) error {
	if t, ok := tx.From(ctx); ok {
		return r.InsertTx(ctx, t, topic, key, payload)
	}
	_, err := r.DB.ExecContext(ctx, insertQuery, uuid.NewString(), topic, key, payload)
	return err
}

// InsertTx writes an event as part of t, so it commits or rolls back
// together with the data change it describes.
func (r *Repository) InsertTx(ctx context.Context, t *sql.Tx, topic, key string, payload []byte) error {
	_, err := t.ExecContext(ctx, insertQuery, uuid.NewString(), topic, key, payload)
	return err
}

// Fetch returns up to `limit` unpublished outbox rows ordered by creation time.
func (r *Repository) Fetch(ctx context.Context, limit int) ([]Row, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, topic, key, payload FROM outbox WHERE published_at IS NULL ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Topic, &row.Key, &row.Payload); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Repository) MarkPublished(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE outbox SET published_at = NOW() WHERE id = $1`, id)
	return err
}
