package repositories

import (
	"context"
	"encoding/json"
	"sort"

	"fishplant-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QueueRepository stores submissions that could not be delivered upstream.
// Rows are ordered by position; a sync drains everything and re-inserts
// failures below the current minimum so they replay before newer entries.
type QueueRepository struct {
	DB *pgxpool.Pool
}

func NewQueueRepository(db *pgxpool.Pool) *QueueRepository {
	return &QueueRepository{DB: db}
}

func (r *QueueRepository) Enqueue(ctx context.Context, kind string, payload json.RawMessage) (*models.QueuedSubmission, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO pending_submissions(position, kind, payload)
         SELECT COALESCE(MAX(position), 0) + 1, $1, $2 FROM pending_submissions
         RETURNING id, kind, payload, enqueued_at`,
		kind, payload)

	var item models.QueuedSubmission
	if err := row.Scan(&item.ID, &item.Kind, &item.Payload, &item.EnqueuedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *QueueRepository) List(ctx context.Context) ([]models.QueuedSubmission, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, kind, payload, enqueued_at
         FROM pending_submissions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.QueuedSubmission{}
	for rows.Next() {
		var item models.QueuedSubmission
		if err := rows.Scan(&item.ID, &item.Kind, &item.Payload, &item.EnqueuedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DrainAll removes every pending submission in one statement and returns
// them in replay order. Submissions enqueued after the drain are untouched.
func (r *QueueRepository) DrainAll(ctx context.Context) ([]models.QueuedSubmission, error) {
	rows, err := r.DB.Query(ctx,
		`DELETE FROM pending_submissions
         RETURNING id, kind, payload, enqueued_at, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type drained struct {
		item models.QueuedSubmission
		pos  int64
	}
	var all []drained
	for rows.Next() {
		var d drained
		if err := rows.Scan(&d.item.ID, &d.item.Kind, &d.item.Payload, &d.item.EnqueuedAt, &d.pos); err != nil {
			return nil, err
		}
		all = append(all, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DELETE..RETURNING does not guarantee order.
	sort.Slice(all, func(i, j int) bool { return all[i].pos < all[j].pos })
	items := make([]models.QueuedSubmission, len(all))
	for i, d := range all {
		items[i] = d.item
	}
	return items, nil
}

// Prepend puts failed submissions back ahead of anything enqueued meanwhile,
// preserving their relative order.
func (r *QueueRepository) Prepend(ctx context.Context, items []models.QueuedSubmission) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var min int64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MIN(position), 0) FROM pending_submissions`).Scan(&min); err != nil {
		return err
	}
	base := min - int64(len(items))
	for i, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO pending_submissions(position, kind, payload, enqueued_at)
             VALUES($1, $2, $3, $4)`,
			base+int64(i), item.Kind, item.Payload, item.EnqueuedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *QueueRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM pending_submissions`).Scan(&n)
	return n, err
}
