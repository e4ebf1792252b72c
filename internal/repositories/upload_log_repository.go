package repositories

import (
	"context"

	"fishplant-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UploadLogRepository struct {
	DB *pgxpool.Pool
}

func NewUploadLogRepository(db *pgxpool.Pool) *UploadLogRepository {
	return &UploadLogRepository{DB: db}
}

func (r *UploadLogRepository) Create(ctx context.Context, l *models.UploadLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO upload_logs(ticket_id, file_name, category, size_bytes, archived)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, uploaded_at`,
		l.TicketID, l.FileName, l.Category, l.SizeBytes, l.Archived,
	).Scan(&l.ID, &l.UploadedAt)
}

func (r *UploadLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]models.UploadLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ticket_id, file_name, category, size_bytes, archived, uploaded_at
         FROM upload_logs WHERE ticket_id=$1 ORDER BY uploaded_at`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.UploadLog{}
	for rows.Next() {
		var l models.UploadLog
		err := rows.Scan(&l.ID, &l.TicketID, &l.FileName, &l.Category,
			&l.SizeBytes, &l.Archived, &l.UploadedAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *UploadLogRepository) MarkArchived(ctx context.Context, id int64) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE upload_logs SET archived = TRUE WHERE id=$1`, id)
	return err
}
