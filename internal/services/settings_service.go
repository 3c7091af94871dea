package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type SettingsService struct {
	settings repository.PaymentSettingRepository
	logger   zerolog.Logger
}

func NewSettingsService(settings repository.PaymentSettingRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settings: settings,
		logger:   logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *SettingsService) List(ctx context.Context) ([]domain.PaymentSetting, error) {
	return s.settings.List(ctx)
}

// ListEnabled is what buyers see at checkout.
func (s *SettingsService) ListEnabled(ctx context.Context) ([]domain.PaymentSetting, error) {
	all, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PaymentSetting, 0, len(all))
	for _, st := range all {
		if st.Enabled {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *SettingsService) Upsert(ctx context.Context, method domain.PaymentMethod, enabled bool, details map[string]any) (*domain.PaymentSetting, error) {
	if !method.Valid() {
		return nil, domain.NewValidationError("method", "must be one of wise, western_union, promptpay")
	}
	if details == nil {
		details = map[string]any{}
	}
	st := &domain.PaymentSetting{
		Method:  method,
		Enabled: enabled,
		Details: datatypes.JSONMap(details),
	}
	if err := s.settings.Upsert(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info().Str("method", string(method)).Bool("enabled", enabled).Msg("payment setting saved")
	return st, nil
}
