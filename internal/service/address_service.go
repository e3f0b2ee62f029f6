package service

import (
	"context"
	"fmt"
	"strings"

	"address-api/internal/geo"
	"address-api/internal/metrics"
	"address-api/internal/models"

	"github.com/rs/zerolog/log"
)

// AddressService contains the core business logic for address bookkeeping and proximity search
type AddressService struct {
	repo AddressRepository
}

// AddressRepository interface for dependency injection
type AddressRepository interface {
	Create(ctx context.Context, in models.AddressInput) (models.Address, error)
	Update(ctx context.Context, id int64, in models.AddressInput) (models.Address, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Address, error)
}

// NewAddressService creates a new address service
func NewAddressService(repo AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// Create validates and stores a new address
func (s *AddressService) Create(ctx context.Context, in models.AddressInput) (models.Address, error) {
	if err := validate(in); err != nil {
		return models.Address{}, err
	}

	a, err := s.repo.Create(ctx, in)
	if err != nil {
		return models.Address{}, fmt.Errorf("service: failed to create address: %w", err)
	}

	log.Ctx(ctx).Info().Int64("id", a.ID).Msg("address created")
	return a, nil
}

// Update replaces all fields of an existing address
func (s *AddressService) Update(ctx context.Context, id int64, in models.AddressInput) (models.Address, error) {
	if err := validate(in); err != nil {
		return models.Address{}, err
	}

	a, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return models.Address{}, fmt.Errorf("service: failed to update address: %w", err)
	}

	log.Ctx(ctx).Info().Int64("id", id).Msg("address updated")
	return a, nil
}

// Delete removes an address permanently
func (s *AddressService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete address: %w", err)
	}

	log.Ctx(ctx).Info().Int64("id", id).Msg("address deleted")
	return nil
}

// List returns every stored address
func (s *AddressService) List(ctx context.Context) ([]models.Address, error) {
	addresses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Nearby returns the addresses within distanceKm of (lat, lon) by scanning the whole store.
// A negative distance yields an empty result rather than an error.
func (s *AddressService) Nearby(ctx context.Context, lat, lon, distanceKm float64) ([]models.Address, error) {
	if err := geo.ValidateCoordinate(lat, lon); err != nil {
		return nil, fmt.Errorf("service: %w: %v", models.ErrValidation, err)
	}

	addresses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}

	nearby := geo.Within(lat, lon, distanceKm, addresses)
	metrics.NearbyMatches.Observe(float64(len(nearby)))

	log.Ctx(ctx).Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Float64("distance_km", distanceKm).
		Int("scanned", len(addresses)).
		Int("matched", len(nearby)).
		Msg("nearby query")

	return nearby, nil
}

func validate(in models.AddressInput) error {
	var problems []string

	if strings.TrimSpace(in.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		problems = append(problems, "address is required")
	}
	if in.Latitude == nil {
		problems = append(problems, "latitude is required")
	}
	if in.Longitude == nil {
		problems = append(problems, "longitude is required")
	}
	if in.Latitude != nil && in.Longitude != nil {
		if err := geo.ValidateCoordinate(*in.Latitude, *in.Longitude); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("service: %w: %s", models.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
