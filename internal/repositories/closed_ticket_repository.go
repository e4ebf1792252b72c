package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClosedTicketRepository records tickets that have been closed locally.
// The upstream sheet has no notion of a closed ticket, so closing is a
// local, terminal marker merged into month listings.
type ClosedTicketRepository struct {
	DB *pgxpool.Pool
}

func NewClosedTicketRepository(db *pgxpool.Pool) *ClosedTicketRepository {
	return &ClosedTicketRepository{DB: db}
}

func (r *ClosedTicketRepository) Close(ctx context.Context, ticketID string, userID int) (time.Time, error) {
	var closedAt time.Time
	err := r.DB.QueryRow(ctx,
		`INSERT INTO closed_tickets(ticket_id, closed_by_user_id)
         VALUES($1, $2)
         ON CONFLICT(ticket_id) DO UPDATE SET ticket_id = EXCLUDED.ticket_id
         RETURNING closed_at`,
		ticketID, userID).Scan(&closedAt)
	return closedAt, err
}

func (r *ClosedTicketRepository) IsClosed(ctx context.Context, ticketID string) (bool, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM closed_tickets WHERE ticket_id=$1`, ticketID).Scan(&n)
	return n > 0, err
}

// ClosedSet returns which of the given ticket ids are closed.
func (r *ClosedTicketRepository) ClosedSet(ctx context.Context, ticketIDs []string) (map[string]bool, error) {
	closed := map[string]bool{}
	if len(ticketIDs) == 0 {
		return closed, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT ticket_id FROM closed_tickets WHERE ticket_id = ANY($1)`, ticketIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		closed[id] = true
	}
	return closed, rows.Err()
}
