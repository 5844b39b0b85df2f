package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
)

// Key identifies one persisted collection blob. The values are the
// legacy storage keys and must not change.
type Key string

const (
	KeyTeachers Key = "professores"
	KeyEvents   Key = "eventos"
	KeyStudents Key = "alunos"
	KeyConfig   Key = "config"
)

// ErrKeyNotFound is returned by KV backends when no blob exists for a key.
var ErrKeyNotFound = errors.New("store: key not found")

// KV is the raw blob contract every backend implements. Values are
// opaque JSON strings, one per collection.
type KV interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error
}

// Store is the typed access layer over a KV backend.
//
// Reads never fail: a missing or malformed blob degrades to the
// collection's empty (or default) value after logging. Writes log
// failures and return nothing, so callers cannot observe a failed
// persist. Both are deliberate carry-overs from the original tool.
//
// All writes serialize on one mutex. Collection mutations must go
// through the Mutate methods, which hold that mutex across the whole
// load-modify-save cycle so two concurrent mutations can never
// overwrite each other's records.
type Store struct {
	kv     KV
	logger *zap.Logger

	mu             sync.Mutex
	onWriteFailure func(Key)
}

// New builds a Store over the given backend.
func New(kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// OnWriteFailure registers a callback invoked whenever persisting a
// blob fails, after the failure has been logged.
func (s *Store) OnWriteFailure(fn func(Key)) {
	s.onWriteFailure = fn
}

// Teachers loads the teacher collection.
func (s *Store) Teachers(ctx context.Context) []models.Teacher {
	out := []models.Teacher{}
	s.load(ctx, KeyTeachers, &out)
	return out
}

// SaveTeachers replaces the teacher collection wholesale. Use
// MutateTeachers for record-level edits.
func (s *Store) SaveTeachers(ctx context.Context, teachers []models.Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, KeyTeachers, teachers)
}

// MutateTeachers loads the teacher collection fresh, applies fn and
// writes the result back, all under the store's write lock.
func (s *Store) MutateTeachers(ctx context.Context, fn func([]models.Teacher) []models.Teacher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	teachers := []models.Teacher{}
	s.load(ctx, KeyTeachers, &teachers)
	s.save(ctx, KeyTeachers, fn(teachers))
}

// Events loads the event collection.
func (s *Store) Events(ctx context.Context) []models.Event {
	out := []models.Event{}
	s.load(ctx, KeyEvents, &out)
	return out
}

// SaveEvents replaces the event collection wholesale. Use MutateEvents
// for record-level edits.
func (s *Store) SaveEvents(ctx context.Context, events []models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, KeyEvents, events)
}

// MutateEvents loads the event collection fresh, applies fn and writes
// the result back, all under the store's write lock.
func (s *Store) MutateEvents(ctx context.Context, fn func([]models.Event) []models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := []models.Event{}
	s.load(ctx, KeyEvents, &events)
	s.save(ctx, KeyEvents, fn(events))
}

// Students loads the student collection.
func (s *Store) Students(ctx context.Context) []models.Student {
	out := []models.Student{}
	s.load(ctx, KeyStudents, &out)
	return out
}

// SaveStudents replaces the student collection wholesale. Use
// MutateStudents for record-level edits.
func (s *Store) SaveStudents(ctx context.Context, students []models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, KeyStudents, students)
}

// MutateStudents loads the student collection fresh, applies fn and
// writes the result back, all under the store's write lock.
func (s *Store) MutateStudents(ctx context.Context, fn func([]models.Student) []models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	students := []models.Student{}
	s.load(ctx, KeyStudents, &students)
	s.save(ctx, KeyStudents, fn(students))
}

// Config loads the singleton configuration, creating defaults when the
// blob is absent or unreadable.
func (s *Store) Config(ctx context.Context) models.AppConfig {
	cfg := models.DefaultAppConfig()
	s.load(ctx, KeyConfig, &cfg)
	return cfg
}

// SaveConfig overwrites the singleton configuration.
func (s *Store) SaveConfig(ctx context.Context, cfg models.AppConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save(ctx, KeyConfig, cfg)
}

// Reset drops the three data collections. The configuration blob is
// kept, matching the original reset behaviour.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []Key{KeyTeachers, KeyEvents, KeyStudents} {
		if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrKeyNotFound) {
			s.logger.Error("store delete failed", zap.String("key", string(key)), zap.Error(err))
		}
	}
}

// load fills dst from the blob at key. dst keeps its prior (default)
// value when the blob is absent or cannot be decoded.
func (s *Store) load(ctx context.Context, key Key, dst interface{}) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn("store read failed, using default", zap.String("key", string(key)), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("store blob malformed, using default", zap.String("key", string(key)), zap.Error(err))
	}
}

func (s *Store) save(ctx context.Context, key Key, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("store encode failed", zap.String("key", string(key)), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.logger.Error("store write failed", zap.String("key", string(key)), zap.Error(err))
		if s.onWriteFailure != nil {
			s.onWriteFailure(key)
		}
	}
}
