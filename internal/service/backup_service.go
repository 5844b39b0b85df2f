package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
)

// BackupService exports and restores the full store contents as a
// single JSON document.
type BackupService struct {
	store  *store.Store
	logger *zap.Logger
	clock  Clock
}

// NewBackupService constructs the backup service.
func NewBackupService(st *store.Store, logger *zap.Logger, clock Clock) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &BackupService{store: st, logger: logger, clock: clock}
}

// Export dumps all collections plus the config singleton. The second
// return value is the conventional download filename.
func (s *BackupService) Export(ctx context.Context) (models.Backup, string) {
	teachers := s.store.Teachers(ctx)
	events := s.store.Events(ctx)
	students := s.store.Students(ctx)
	cfg := s.store.Config(ctx)

	filename := fmt.Sprintf("edusys_backup_%s.json", s.clock().Format("2006-01-02"))
	return models.Backup{
		Teachers: &teachers,
		Events:   &events,
		Students: &students,
		Config:   &cfg,
	}, filename
}

// Import restores collections from a backup document. Only the keys
// present in the file are overwritten; a file that fails to parse or
// carries none of the known keys aborts with no mutation at all.
func (s *BackupService) Import(ctx context.Context, raw []byte) error {
	var backup models.Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return appErrors.Wrap(err, appErrors.ErrImportFormat.Code, appErrors.ErrImportFormat.Status, "backup file is not valid JSON")
	}
	if backup.Empty() {
		return appErrors.Clone(appErrors.ErrImportFormat, "backup file has none of the expected collections")
	}

	if backup.Teachers != nil {
		s.store.SaveTeachers(ctx, *backup.Teachers)
	}
	if backup.Events != nil {
		s.store.SaveEvents(ctx, *backup.Events)
	}
	if backup.Students != nil {
		s.store.SaveStudents(ctx, *backup.Students)
	}
	if backup.Config != nil {
		s.store.SaveConfig(ctx, *backup.Config)
	}

	s.logger.Info("backup imported",
		zap.Bool("teachers", backup.Teachers != nil),
		zap.Bool("events", backup.Events != nil),
		zap.Bool("students", backup.Students != nil),
		zap.Bool("config", backup.Config != nil),
	)
	return nil
}

// Reset drops the three data collections, keeping the configuration.
func (s *BackupService) Reset(ctx context.Context) {
	s.store.Reset(ctx)
	s.logger.Info("all collections reset")
}
