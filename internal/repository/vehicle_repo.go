package repository

import (
	"context"
	"database/sql"
	"fmt"

	"autocare/internal/apperrors"
	"autocare/internal/db"
)

const vehicleColumns = `id, owner_id, make, model, year, license_plate, color, created_at, updated_at`

func scanVehicle(row interface{ Scan(...any) error }, v *db.Vehicle) error {
	var color sql.NullString
	err := row.Scan(&v.ID, &v.OwnerID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &color, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return err
	}
	v.Color = color.String
	return nil
}

func (s *PostgresStore) ListVehicles(ctx context.Context, ownerID string) ([]db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", translateErr(err))
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicles: %w", translateErr(err))
	}
	return vehicles, nil
}

func (s *PostgresStore) GetVehicleByID(ctx context.Context, id string) (*db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var v db.Vehicle
	if err := scanVehicle(s.DB.QueryRowContext(ctx, query, id), &v); err != nil {
		return nil, translateErr(err)
	}
	return &v, nil
}

func (s *PostgresStore) CreateVehicle(ctx context.Context, v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, owner_id, make, model, year, license_plate, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.DB.ExecContext(ctx, query,
		v.ID, v.OwnerID, v.Make, v.Model, v.Year, v.LicensePlate, nullString(v.Color), v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting vehicle: %w", translateErr(err))
	}
	return nil
}

func (s *PostgresStore) UpdateVehicle(ctx context.Context, v *db.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, license_plate = $4, color = $5, updated_at = $6
		WHERE id = $7`
	result, err := s.DB.ExecContext(ctx, query,
		v.Make, v.Model, v.Year, v.LicensePlate, nullString(v.Color), v.UpdatedAt, v.ID)
	if err != nil {
		return fmt.Errorf("error updating vehicle: %w", translateErr(err))
	}
	return requireRow(result)
}

func (s *PostgresStore) DeleteVehicle(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting vehicle: %w", translateErr(err))
	}
	return requireRow(result)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// requireRow turns a zero-row update/delete into ErrNotFound.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
