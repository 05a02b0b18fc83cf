package preferences

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	dompref "github.com/kailas-cloud/solrdesk/internal/domain/preferences"
)

// DefaultProfile is used for a blank profile name.
const DefaultProfile = "default"

var profilePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.@-]{0,127}$`)

// Service loads and saves desk preferences.
type Service struct {
	repo Repository
}

// New creates a preferences service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Load returns the normalized preferences of a profile.
func (s *Service) Load(ctx context.Context, profile string) (dompref.Preferences, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return dompref.Preferences{}, err
	}
	p, err := s.repo.Load(ctx, profile)
	if err != nil {
		return dompref.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return p.Normalized(), nil
}

// Save overwrites the preferences of a profile and returns what was stored.
func (s *Service) Save(ctx context.Context, profile string, p dompref.Preferences) (dompref.Preferences, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return dompref.Preferences{}, err
	}
	p = p.Normalized()
	p.Language = strings.TrimSpace(p.Language)
	if err := s.repo.Save(ctx, profile, p); err != nil {
		return dompref.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	return p, nil
}

// Reset forgets everything saved for a profile.
func (s *Service) Reset(ctx context.Context, profile string) error {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, profile); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}

// RememberCollections stores the collection selection of a profile, keeping its other settings.
func (s *Service) RememberCollections(ctx context.Context, profile string, collections []string, active string) error {
	p, err := s.Load(ctx, profile)
	if err != nil {
		return err
	}
	p.Collections = collections
	p.ActiveCollection = active
	_, err = s.Save(ctx, profile, p)
	return err
}

func normalizeProfile(profile string) (string, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return DefaultProfile, nil
	}
	if !profilePattern.MatchString(profile) {
		return "", fmt.Errorf("%w: invalid profile %q", domain.ErrValidation, profile)
	}
	return profile, nil
}
