package services

import (
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/ports"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the explicit per-user context created when the home view is
// entered and torn down when it is left. Each field is written by exactly one
// component: location by LocationResolver, hospitals by HospitalRanker,
// the dial number by EmergencyNumberResolver.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu              sync.RWMutex
	location        *domain.Coordinate
	hospitals       []domain.Hospital
	emergencyNumber string
	profileRequired bool
	warnings        []string

	guidance *GuidanceClient
}

// Read-only copy of a session for rendering.
type SessionSnapshot struct {
	ID              uuid.UUID
	StartedAt       time.Time
	Location        *domain.Coordinate
	Hospitals       []domain.Hospital
	NearestHospital *domain.Hospital
	EmergencyNumber string
	ProfileRequired bool
	Warnings        []string
}

func NewSession() *Session {
	return &Session{
		ID:              uuid.New(),
		StartedAt:       time.Now(),
		hospitals:       []domain.Hospital{},
		emergencyNumber: domain.DefaultEmergencyNumber,
	}
}

func (s *Session) SetLocation(c domain.Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = &c
}

func (s *Session) Location() (domain.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.location == nil {
		return domain.Coordinate{}, false
	}
	return *s.location, true
}

func (s *Session) SetHospitals(hs []domain.Hospital) {
	cp := make([]domain.Hospital, len(hs))
	copy(cp, hs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hospitals = cp
}

func (s *Session) Hospitals() []domain.Hospital {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]domain.Hospital, len(s.hospitals))
	copy(cp, s.hospitals)
	return cp
}

// NearestHospital returns the first ranked hospital, if any were found.
func (s *Session) NearestHospital() (domain.Hospital, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NearestHospital(s.hospitals)
}

func (s *Session) SetEmergencyNumber(n string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emergencyNumber = n
}

func (s *Session) EmergencyNumber() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emergencyNumber
}

func (s *Session) SetProfileRequired(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileRequired = v
}

func (s *Session) addWarning(w string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, w)
}

// Guidance returns the session's guidance state machine.
func (s *Session) Guidance() *GuidanceClient { return s.guidance }

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := SessionSnapshot{
		ID:              s.ID,
		StartedAt:       s.StartedAt,
		Hospitals:       make([]domain.Hospital, len(s.hospitals)),
		EmergencyNumber: s.emergencyNumber,
		ProfileRequired: s.profileRequired,
		Warnings:        append([]string(nil), s.warnings...),
	}
	copy(snap.Hospitals, s.hospitals)
	if s.location != nil {
		c := *s.location
		snap.Location = &c
	}
	if h, ok := domain.NearestHospital(s.hospitals); ok {
		snap.NearestHospital = &h
	}
	return snap
}

// SessionManager owns live sessions. Each session gets its own guidance
// state machine wired to the session's nearest hospital. With an idle TTL set,
// sessions not looked up within it are dropped on the next Start or Get.
type SessionManager struct {
	provider     ports.GuidanceProvider
	guidanceOpts []GuidanceOption
	idleTTL      time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*managedSession
}

type managedSession struct {
	*Session
	lastSeen time.Time
}

func NewSessionManager(provider ports.GuidanceProvider, opts ...GuidanceOption) *SessionManager {
	return &SessionManager{
		provider:     provider,
		guidanceOpts: opts,
		now:          time.Now,
		sessions:     make(map[uuid.UUID]*managedSession),
	}
}

// SetIdleTTL enables expiry of sessions idle for longer than d. Zero keeps
// sessions until End.
func (m *SessionManager) SetIdleTTL(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleTTL = d
}

func (m *SessionManager) Start() *Session {
	s := NewSession()
	opts := append([]GuidanceOption{WithNearestHospital(s.NearestHospital)}, m.guidanceOpts...)
	s.guidance = NewGuidanceClient(m.provider, opts...)

	m.mu.Lock()
	now := m.now()
	expired := m.sweepLocked(now)
	m.sessions[s.ID] = &managedSession{Session: s, lastSeen: now}
	m.mu.Unlock()

	resetAll(expired)
	return s
}

func (m *SessionManager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	now := m.now()
	expired := m.sweepLocked(now)
	ms, ok := m.sessions[id]
	if ok {
		ms.lastSeen = now
	}
	m.mu.Unlock()

	resetAll(expired)
	if !ok {
		return nil, false
	}
	return ms.Session, true
}

// End tears the session down and invalidates any in-flight guidance request.
func (m *SessionManager) End(id uuid.UUID) bool {
	m.mu.Lock()
	ms, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		resetAll([]*Session{ms.Session})
	}
	return ok
}

func (m *SessionManager) sweepLocked(now time.Time) []*Session {
	if m.idleTTL <= 0 {
		return nil
	}
	var expired []*Session
	for id, ms := range m.sessions {
		if now.Sub(ms.lastSeen) > m.idleTTL {
			expired = append(expired, ms.Session)
			delete(m.sessions, id)
		}
	}
	return expired
}

func resetAll(sessions []*Session) {
	for _, s := range sessions {
		if s.guidance != nil {
			s.guidance.Reset()
		}
	}
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
