package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"autocare/internal/db"
)

const serviceColumns = `id, name, description, price_cents, duration_minutes, category, active, created_at`

func (s *PostgresStore) ListActiveServices(ctx context.Context) ([]db.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE active = TRUE ORDER BY category, name`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying services: %w", translateErr(err))
	}
	defer rows.Close()

	var services []db.Service
	for rows.Next() {
		var svc db.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.PriceCents, &svc.DurationMinutes, &svc.Category, &svc.Active, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating services: %w", translateErr(err))
	}
	return services, nil
}

func (s *PostgresStore) GetServiceByID(ctx context.Context, id string) (*db.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND active = TRUE`

	var svc db.Service
	err := s.DB.QueryRowContext(ctx, query, id).
		Scan(&svc.ID, &svc.Name, &svc.Description, &svc.PriceCents, &svc.DurationMinutes, &svc.Category, &svc.Active, &svc.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &svc, nil
}

func (s *PostgresStore) GetServicesByIDs(ctx context.Context, ids []string) ([]db.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1) AND active = TRUE`

	rows, err := s.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("error querying services by ids: %w", translateErr(err))
	}
	defer rows.Close()

	var services []db.Service
	for rows.Next() {
		var svc db.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.PriceCents, &svc.DurationMinutes, &svc.Category, &svc.Active, &svc.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating services: %w", translateErr(err))
	}
	return services, nil
}
