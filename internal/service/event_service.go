package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
)

// EventService manages the calendar event collection.
type EventService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
	clock     Clock
}

// NewEventService constructs the service. A nil clock falls back to
// time.Now.
func NewEventService(st *store.Store, validate *validator.Validate, logger *zap.Logger, clock Clock) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	svc := &EventService{store: st, validator: validate, logger: logger, clock: clock}
	svc.validator.RegisterValidation("priority", func(fl validator.FieldLevel) bool { //nolint:errcheck
		return models.EventPriority(fl.Field().String()).Valid()
	})
	return svc
}

// CreateEventRequest describes the create payload. Omitted fields get
// the historical defaults: date tomorrow, 08:00, media priority, one
// day of advance notice.
type CreateEventRequest struct {
	Title       string  `json:"titulo" validate:"required"`
	Description string  `json:"descricao"`
	Date        string  `json:"data"`
	Time        string  `json:"hora"`
	WhatsApp    string  `json:"whatsapp"`
	Priority    string  `json:"prioridade" validate:"omitempty,priority"`
	LeadDays    *int    `json:"notificacaoAntecipada" validate:"omitempty,gte=0"`
}

// UpdateEventRequest describes the full-record replace payload.
type UpdateEventRequest struct {
	Title       string `json:"titulo" validate:"required"`
	Description string `json:"descricao"`
	Date        string `json:"data" validate:"required"`
	Time        string `json:"hora" validate:"required"`
	WhatsApp    string `json:"whatsapp"`
	Priority    string `json:"prioridade" validate:"required,priority"`
	LeadDays    int    `json:"notificacaoAntecipada" validate:"gte=0"`
}

// List returns events matching the filter, ordered by the sort key.
func (s *EventService) List(ctx context.Context, filter models.EventFilter, sortBy models.EventSort) []models.Event {
	events := s.store.Events(ctx)
	now := s.clock()

	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if s.matches(e, filter, now) {
			filtered = append(filtered, e)
		}
	}
	s.sortEvents(filtered, sortBy)
	return filtered
}

// Get returns one event by id.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	for _, e := range s.store.Events(ctx) {
		if e.ID == id {
			event := e
			return &event, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
}

// Create registers a new event, applying defaults for omitted fields.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}

	event := models.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		WhatsApp:    req.WhatsApp,
		Priority:    models.EventPriority(req.Priority),
		LeadDays:    1,
		Notified:    false,
	}
	if event.Date == "" {
		event.Date = midnight(s.clock()).AddDate(0, 0, 1).Format(dateLayout)
	}
	if event.Time == "" {
		event.Time = "08:00"
	}
	if event.Priority == "" {
		event.Priority = models.PriorityMedium
	}
	if req.LeadDays != nil {
		event.LeadDays = *req.LeadDays
	}
	if _, ok := parseEventDate(event.Date, s.clock().Location()); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "data must be formatted as YYYY-MM-DD")
	}

	s.store.MutateEvents(ctx, func(events []models.Event) []models.Event {
		return append(events, event)
	})
	return &event, nil
}

// Update replaces an event. Changing the date, time or lead offset
// re-arms the notification; any other edit keeps the notified flag.
func (s *EventService) Update(ctx context.Context, id string, req UpdateEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if _, ok := parseEventDate(req.Date, s.clock().Location()); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "data must be formatted as YYYY-MM-DD")
	}

	var updated *models.Event
	s.store.MutateEvents(ctx, func(events []models.Event) []models.Event {
		for i, e := range events {
			if e.ID != id {
				continue
			}
			next := models.Event{
				ID:          e.ID,
				Title:       req.Title,
				Description: req.Description,
				Date:        req.Date,
				Time:        req.Time,
				WhatsApp:    req.WhatsApp,
				Priority:    models.EventPriority(req.Priority),
				LeadDays:    req.LeadDays,
				Notified:    e.Notified,
			}
			if e.Date != next.Date || e.Time != next.Time || e.LeadDays != next.LeadDays {
				next.Notified = false
			}
			events[i] = next
			updated = &next
			break
		}
		return events
	})
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return updated, nil
}

// Delete removes an event by id.
func (s *EventService) Delete(ctx context.Context, id string) error {
	found := false
	s.store.MutateEvents(ctx, func(events []models.Event) []models.Event {
		for i, e := range events {
			if e.ID == id {
				found = true
				return append(events[:i], events[i+1:]...)
			}
		}
		return events
	})
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return nil
}

func (s *EventService) matches(e models.Event, filter models.EventFilter, now time.Time) bool {
	switch filter {
	case models.FilterNone:
		return true
	case models.FilterHigh, models.FilterMedium, models.FilterLow:
		return e.Priority == models.EventPriority(filter)
	}

	date, ok := parseEventDate(e.Date, now.Location())
	if !ok {
		return false
	}
	today := midnight(now)
	day := midnight(date)

	switch filter {
	case models.FilterToday:
		return day.Equal(today)
	case models.FilterTomorrow:
		return day.Equal(today.AddDate(0, 0, 1))
	case models.FilterWeek:
		return !day.Before(today) && !day.After(today.AddDate(0, 0, 7))
	case models.FilterUpcoming:
		return !day.Before(today)
	case models.FilterPast:
		return day.Before(today)
	}
	return true
}

func (s *EventService) sortEvents(events []models.Event, sortBy models.EventSort) {
	switch sortBy {
	case models.SortByPriority:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Priority.Rank() < events[j].Priority.Rank()
		})
	case models.SortByTitle:
		// Collators are not safe for concurrent use, so build one per call.
		c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
		sort.SliceStable(events, func(i, j int) bool {
			return c.CompareString(events[i].Title, events[j].Title) < 0
		})
	default:
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].Date != events[j].Date {
				return events[i].Date < events[j].Date
			}
			return events[i].Time < events[j].Time
		})
	}
}
