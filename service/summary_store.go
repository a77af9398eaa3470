package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type summaryEntry struct {
	text      string
	expiresAt time.Time
}

// SummaryStore keeps the last generated summary per session so that a
// question asked in one session never sees another session's invoice.
type SummaryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]summaryEntry
}

func NewSummaryStore(ttl time.Duration) *SummaryStore {
	return &SummaryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]summaryEntry),
	}
}

// Save stores summary under sessionID, minting a new id when it is empty.
// Saving again under the same id replaces the previous summary.
func (s *SummaryStore) Save(sessionID, summary string) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = summaryEntry{text: summary, expiresAt: s.now().Add(s.ttl)}
	return sessionID
}

func (s *SummaryStore) Get(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return "", false
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return "", false
	}
	return entry.text, true
}

// Sweep drops expired sessions and reports how many were removed.
func (s *SummaryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
