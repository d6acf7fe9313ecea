package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"autocare/internal/apperrors"
	"autocare/internal/db"
	"autocare/internal/repository"
	"autocare/internal/utils"
)

type VehicleService struct {
	store repository.Store
}

func NewVehicleService(store repository.Store) *VehicleService {
	return &VehicleService{store: store}
}

// VehicleInput carries the user-editable vehicle fields. Make, model, year
// and license plate are required; color is optional.
type VehicleInput struct {
	Make         string
	Model        string
	Year         int
	LicensePlate string
	Color        string
}

func (in *VehicleInput) validate() error {
	if strings.TrimSpace(in.Make) == "" {
		return fmt.Errorf("%w: make is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(in.Model) == "" {
		return fmt.Errorf("%w: model is required", apperrors.ErrValidation)
	}
	if !utils.ValidYear(in.Year) {
		return fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidation, in.Year)
	}
	if strings.TrimSpace(in.LicensePlate) == "" {
		return fmt.Errorf("%w: license plate is required", apperrors.ErrValidation)
	}
	return nil
}

func (s *VehicleService) List(ctx context.Context, ownerID string) ([]db.Vehicle, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.store.ListVehicles(ctx, ownerID)
}

func (s *VehicleService) Add(ctx context.Context, ownerID string, in VehicleInput) (*db.Vehicle, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &db.Vehicle{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Make:         strings.TrimSpace(in.Make),
		Model:        strings.TrimSpace(in.Model),
		Year:         in.Year,
		LicensePlate: utils.NormalizePlate(in.LicensePlate),
		Color:        strings.TrimSpace(in.Color),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleService) Update(ctx context.Context, ownerID, vehicleID string, in VehicleInput) (*db.Vehicle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	v, err := s.ownedVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	v.Make = strings.TrimSpace(in.Make)
	v.Model = strings.TrimSpace(in.Model)
	v.Year = in.Year
	v.LicensePlate = utils.NormalizePlate(in.LicensePlate)
	v.Color = strings.TrimSpace(in.Color)
	v.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("updating vehicle: %w", err)
	}
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, ownerID, vehicleID string) error {
	if _, err := s.ownedVehicle(ctx, ownerID, vehicleID); err != nil {
		return err
	}
	return s.store.DeleteVehicle(ctx, vehicleID)
}

func (s *VehicleService) ownedVehicle(ctx context.Context, ownerID, vehicleID string) (*db.Vehicle, error) {
	if ownerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	v, err := s.store.GetVehicleByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != ownerID {
		return nil, apperrors.ErrOwnershipMismatch
	}
	return v, nil
}
