package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jxdata/portal/internal/model"
)

type LeadRepository struct {
	pool *pgxpool.Pool
}

func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Create inserts a lead. Re-delivered leads with a known ID are ignored.
func (r *LeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leads (id, visitor_id, name, company, phone, email, message, recommendations, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO NOTHING`,
		lead.ID, lead.VisitorID, lead.Name, lead.Company, lead.Phone,
		lead.Email, lead.Message, lead.Recommendations, lead.CreatedAt,
	)
	return err
}

// ListRecent returns the newest leads first.
func (r *LeadRepository) ListRecent(ctx context.Context, limit int) ([]model.Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, visitor_id, name, company, phone, email, message, recommendations, created_at
		 FROM leads ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.VisitorID, &l.Name, &l.Company, &l.Phone,
			&l.Email, &l.Message, &l.Recommendations, &l.CreatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}
