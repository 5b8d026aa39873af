package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blogpress-backend/internal/domains/settings/model"
	"blogpress-backend/internal/domains/settings/repository"
	"blogpress-backend/internal/infrastructure/revalidate"
)

type ServiceInterface interface {
	GetSite(ctx context.Context) (model.SiteSettings, error)
	UpdateSite(ctx context.Context, req *model.UpdateSiteRequest) (model.SiteSettings, error)

	// JoinRequestsEnabled reads the stored join_disabled flag and returns
	// its inversion. A missing row means the form is open.
	JoinRequestsEnabled(ctx context.Context) (bool, error)
	SetJoinRequestsEnabled(ctx context.Context, enabled bool) error

	// ApplyEntries merges typed sheet rows into the stored settings and
	// returns how many were applied.
	ApplyEntries(ctx context.Context, entries []model.Entry) (int, error)
}

type settingsService struct {
	repo  repository.RepositoryInterface
	reval revalidate.Invalidator
}

func NewSettingsService(repo repository.RepositoryInterface, reval revalidate.Invalidator) ServiceInterface {
	return &settingsService{
		repo:  repo,
		reval: reval,
	}
}

func (s *settingsService) GetSite(ctx context.Context) (model.SiteSettings, error) {
	setting, err := s.repo.Get(ctx, model.KeySite)
	if err != nil {
		if errors.Is(err, model.ErrSettingNotFound) {
			return model.SiteSettings{}, nil
		}
		return nil, err
	}

	var site model.SiteSettings
	if err := json.Unmarshal(setting.Value, &site); err != nil {
		return nil, fmt.Errorf("failed to decode site settings: %w", err)
	}
	return site, nil
}

func (s *settingsService) UpdateSite(ctx context.Context, req *model.UpdateSiteRequest) (model.SiteSettings, error) {
	if len(req.Settings) == 0 {
		return nil, model.ErrInvalidEntry
	}

	merged, err := s.mergeSite(ctx, req.Settings)
	if err != nil {
		return nil, err
	}

	s.revalidateSettings(ctx)

	return merged, nil
}

func (s *settingsService) JoinRequestsEnabled(ctx context.Context) (bool, error) {
	setting, err := s.repo.Get(ctx, model.KeyJoinRequests)
	if err != nil {
		if errors.Is(err, model.ErrSettingNotFound) {
			return true, nil
		}
		return false, err
	}

	var state model.JoinState
	if err := json.Unmarshal(setting.Value, &state); err != nil {
		return false, fmt.Errorf("failed to decode join state: %w", err)
	}
	return !state.JoinDisabled, nil
}

func (s *settingsService) SetJoinRequestsEnabled(ctx context.Context, enabled bool) error {
	value, err := json.Marshal(model.JoinState{JoinDisabled: !enabled})
	if err != nil {
		return fmt.Errorf("failed to encode join state: %w", err)
	}

	if _, err := s.repo.Upsert(ctx, model.KeyJoinRequests, value); err != nil {
		return err
	}

	s.revalidateSettings(ctx)

	return nil
}

func (s *settingsService) ApplyEntries(ctx context.Context, entries []model.Entry) (int, error) {
	siteUpdates := model.SiteSettings{}
	var joinDisabled *bool

	for i, e := range entries {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return 0, fmt.Errorf("row %d: %w: empty key", i+1, model.ErrInvalidEntry)
		}

		value, err := parseTypedValue(e.Type, e.Value)
		if err != nil {
			return 0, fmt.Errorf("row %d (%s): %w", i+1, key, err)
		}

		if key == "join_disabled" {
			b, ok := value.(bool)
			if !ok {
				return 0, fmt.Errorf("row %d: %w: join_disabled must be boolean", i+1, model.ErrInvalidEntry)
			}
			joinDisabled = &b
			continue
		}

		siteUpdates[key] = value
	}

	applied := 0

	if len(siteUpdates) > 0 {
		if _, err := s.mergeSite(ctx, siteUpdates); err != nil {
			return 0, err
		}
		applied += len(siteUpdates)
	}

	if joinDisabled != nil {
		value, err := json.Marshal(model.JoinState{JoinDisabled: *joinDisabled})
		if err != nil {
			return 0, fmt.Errorf("failed to encode join state: %w", err)
		}
		if _, err := s.repo.Upsert(ctx, model.KeyJoinRequests, value); err != nil {
			return 0, err
		}
		applied++
	}

	if applied > 0 {
		s.revalidateSettings(ctx)
	}

	return applied, nil
}

// mergeSite overlays updates onto the stored site settings and writes the
// result back.
func (s *settingsService) mergeSite(ctx context.Context, updates model.SiteSettings) (model.SiteSettings, error) {
	current, err := s.GetSite(ctx)
	if err != nil {
		return nil, err
	}

	for k, v := range updates {
		current[k] = v
	}

	value, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode site settings: %w", err)
	}

	if _, err := s.repo.Upsert(ctx, model.KeySite, value); err != nil {
		return nil, err
	}

	return current, nil
}

func (s *settingsService) revalidateSettings(ctx context.Context) {
	s.reval.Invalidate(ctx, []string{"settings"}, []string{"/"})
}

func parseTypedValue(entryType, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)

	switch strings.ToLower(strings.TrimSpace(entryType)) {
	case model.TypeString:
		return raw, nil
	case model.TypeBoolean:
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", model.ErrInvalidEntry, raw)
		}
		return b, nil
	case model.TypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", model.ErrInvalidEntry, raw)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownType, entryType)
	}
}
