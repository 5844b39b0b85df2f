package models

// EventPriority classifies the urgency of a calendar event. Values are
// the legacy storage strings.
type EventPriority string

const (
	PriorityHigh   EventPriority = "alta"
	PriorityMedium EventPriority = "media"
	PriorityLow    EventPriority = "baixa"
)

// Valid reports whether the priority is one of the known values.
func (p EventPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank orders priorities for sorting: alta before media before baixa.
func (p EventPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Event is a calendar entry with an optional advance notification.
// Dates are stored as "2006-01-02" and times as "15:04" strings,
// matching the persisted blob format.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"titulo" validate:"required"`
	Description string        `json:"descricao"`
	Date        string        `json:"data" validate:"required"`
	Time        string        `json:"hora" validate:"required"`
	WhatsApp    string        `json:"whatsapp,omitempty"`
	Priority    EventPriority `json:"prioridade"`
	LeadDays    int           `json:"notificacaoAntecipada" validate:"gte=0"`
	Notified    bool          `json:"notificado"`
}

// EventFilter names the view-level predicates applied when listing
// events. The zero value means no filtering.
type EventFilter string

const (
	FilterNone     EventFilter = ""
	FilterToday    EventFilter = "hoje"
	FilterTomorrow EventFilter = "amanha"
	FilterWeek     EventFilter = "semana"
	FilterUpcoming EventFilter = "futuros"
	FilterPast     EventFilter = "passados"
	FilterHigh     EventFilter = "alta"
	FilterMedium   EventFilter = "media"
	FilterLow      EventFilter = "baixa"
)

// EventSort names the supported sort keys for event listings.
type EventSort string

const (
	SortByDate     EventSort = "data"
	SortByPriority EventSort = "prioridade"
	SortByTitle    EventSort = "titulo"
)
