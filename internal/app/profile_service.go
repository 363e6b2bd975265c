package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"cutplan/internal/domain"
)

// ErrProfileNotSet is returned when a calculation needs the athlete profile
// before one has been saved.
var ErrProfileNotSet = errors.New("athlete profile not set")

// UpdateProfileInput carries profile settings before validation.
type UpdateProfileInput struct {
	WeightClass int        `json:"weightClass"`
	Protocol    string     `json:"protocol"`
	WeighInAt   time.Time  `json:"weighInAt"`
	AsOf        *time.Time `json:"asOf"`
}

// ProfileService encapsulates athlete-profile use cases.
type ProfileService struct {
	repo domain.ProfileRepository
	log  zerolog.Logger
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log.With().Str("service", "profile").Logger(),
	}
}

// Get returns the saved profile or ErrProfileNotSet.
func (s *ProfileService) Get(ctx context.Context) (*domain.AthleteProfile, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotSet
	}
	return p, nil
}

// Update validates and saves the profile, returning the stored value.
func (s *ProfileService) Update(ctx context.Context, in UpdateProfileInput) (*domain.AthleteProfile, error) {
	protocol, err := domain.ParseProtocol(in.Protocol)
	if err != nil {
		return nil, err
	}
	if in.WeightClass <= 0 {
		return nil, errors.New("weight class must be > 0")
	}
	if in.WeighInAt.IsZero() {
		return nil, errors.New("weigh-in date is required")
	}

	p := domain.AthleteProfile{
		WeightClass: in.WeightClass,
		Protocol:    protocol,
		WeighInAt:   in.WeighInAt,
		AsOf:        in.AsOf,
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.log.Info().
		Int("weightClass", p.WeightClass).
		Str("protocol", string(p.Protocol)).
		Time("weighInAt", p.WeighInAt).
		Msg("profile updated")
	return &p, nil
}
