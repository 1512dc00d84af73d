package provider

import (
	"errors"
	"fmt"
	"time"

	providerRepo "gigbook/database/repository/provider"
	"gigbook/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means the provider does not exist.
	ErrNotFound = errors.New("provider not found")
	// ErrUnauthorized means the actor does not own the provider.
	ErrUnauthorized = errors.New("actor not permitted to modify this provider")
)

// CreateProviderInput is the payload for registering an artist or studio.
type CreateProviderInput struct {
	Name       string  `json:"name" binding:"required"`
	Type       string  `json:"type" binding:"required"`
	Email      string  `json:"email,omitempty"`
	Bio        string  `json:"bio,omitempty"`
	HourlyRate float64 `json:"hourlyRate" binding:"required"`
	Currency   string  `json:"currency" binding:"required"`
}

// ProviderService owns provider profiles. Availability templates are
// managed by the availability service.
type ProviderService interface {
	CreateProvider(actor models.Actor, input CreateProviderInput) (*models.Provider, error)
	GetProvider(id string) (*models.Provider, error)
	ListProviders() ([]models.Provider, error)
	UpdateProfile(actor models.Actor, id string, input CreateProviderInput) (*models.Provider, error)
	DeleteProvider(actor models.Actor, id string) error
}

// DefaultProviderService is the concrete implementation.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

func (s *DefaultProviderService) CreateProvider(actor models.Actor, input CreateProviderInput) (*models.Provider, error) {
	ptype, ok := models.ParseProviderType(input.Type)
	if !ok {
		return nil, fmt.Errorf("unknown provider type %q", input.Type)
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("hourly rate must not be negative")
	}

	now := time.Now()
	p := &models.Provider{
		ID: uuid.New().String(),
		Profile: models.Profile{
			Name:        input.Name,
			Type:        ptype,
			OwnerUserID: actor.UserID,
			Email:       input.Email,
			Bio:         input.Bio,
			HourlyRate:  input.HourlyRate,
			Currency:    input.Currency,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) GetProvider(id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) ListProviders() ([]models.Provider, error) {
	return s.Repo.GetAll()
}

func (s *DefaultProviderService) UpdateProfile(actor models.Actor, id string, input CreateProviderInput) (*models.Provider, error) {
	p, err := s.GetProvider(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != p.Profile.OwnerUserID {
		return nil, ErrUnauthorized
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("hourly rate must not be negative")
	}

	// Provider type is fixed at registration; rate changes only affect
	// future bookings because cost is computed once at creation.
	p.Profile.Name = input.Name
	p.Profile.Email = input.Email
	p.Profile.Bio = input.Bio
	p.Profile.HourlyRate = input.HourlyRate
	p.Profile.Currency = input.Currency
	p.UpdatedAt = time.Now()

	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) DeleteProvider(actor models.Actor, id string) error {
	p, err := s.GetProvider(id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && actor.UserID != p.Profile.OwnerUserID {
		return ErrUnauthorized
	}
	return s.Repo.Delete(id)
}
