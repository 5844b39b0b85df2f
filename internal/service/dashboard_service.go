package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
)

// DashboardService summarises the collections for the landing screen.
type DashboardService struct {
	store  *store.Store
	logger *zap.Logger
	clock  Clock
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(st *store.Store, logger *zap.Logger, clock Clock) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{store: st, logger: logger, clock: clock}
}

// Stats counts the collections. Pending events are upcoming events
// whose alert has not fired yet.
func (s *DashboardService) Stats(ctx context.Context) models.DashboardStats {
	now := s.clock()
	events := s.store.Events(ctx)

	pending := 0
	for _, e := range events {
		days, ok := daysUntil(e.Date, now)
		if ok && days >= 0 && !e.Notified {
			pending++
		}
	}

	return models.DashboardStats{
		Teachers:      len(s.store.Teachers(ctx)),
		Events:        len(events),
		Students:      len(s.store.Students(ctx)),
		PendingEvents: pending,
	}
}
