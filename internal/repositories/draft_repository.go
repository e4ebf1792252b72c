package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"fishplant-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDraftNotFound = errors.New("draft not found")

type DraftRepository struct {
	DB *pgxpool.Pool
}

func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{DB: db}
}

func (r *DraftRepository) Save(ctx context.Context, userID int, form string, payload json.RawMessage) (*models.FormDraft, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO form_drafts(user_id, form, payload, updated_at)
         VALUES($1, $2, $3, NOW())
         ON CONFLICT(user_id, form) DO UPDATE
           SET payload = EXCLUDED.payload, updated_at = NOW()
         RETURNING user_id, form, payload, updated_at`,
		userID, form, payload)

	var draft models.FormDraft
	if err := row.Scan(&draft.UserID, &draft.Form, &draft.Payload, &draft.UpdatedAt); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Get(ctx context.Context, userID int, form string) (*models.FormDraft, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT user_id, form, payload, updated_at
         FROM form_drafts WHERE user_id=$1 AND form=$2`, userID, form)

	var draft models.FormDraft
	err := row.Scan(&draft.UserID, &draft.Form, &draft.Payload, &draft.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Delete(ctx context.Context, userID int, form string) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM form_drafts WHERE user_id=$1 AND form=$2`, userID, form)
	return err
}
