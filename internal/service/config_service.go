package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
)

// ConfigService manages the AppConfig singleton. Presentation concerns
// such as applying the dark theme stay with the consumer; the core
// only stores the flags.
type ConfigService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewConfigService constructs the config service.
func NewConfigService(st *store.Store, logger *zap.Logger) *ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigService{store: st, logger: logger}
}

// UpdateConfigRequest carries the full config record.
type UpdateConfigRequest struct {
	DarkMode            bool `json:"darkMode"`
	WhatsAppIntegration bool `json:"whatsappIntegration"`
}

// Get returns the singleton, created with defaults when absent.
func (s *ConfigService) Get(ctx context.Context) models.AppConfig {
	return s.store.Config(ctx)
}

// Update replaces the singleton.
func (s *ConfigService) Update(ctx context.Context, req UpdateConfigRequest) models.AppConfig {
	cfg := models.AppConfig{
		DarkMode:            req.DarkMode,
		WhatsAppIntegration: req.WhatsAppIntegration,
	}
	s.store.SaveConfig(ctx, cfg)
	return cfg
}
