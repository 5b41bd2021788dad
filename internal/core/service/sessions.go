package service

import (
	"context"
	"sync"
	"time"
	"upscaler/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type session struct {
	workflow *Workflow
	lastSeen time.Time
}

// Sessions holds one Workflow per client key.
type Sessions struct {
	converter port.Converter
	upscaler  port.Upscaler
	ttl       time.Duration
	now       func() time.Time

	mutex    sync.Mutex
	sessions map[string]*session
}

func NewSessions(converter port.Converter, upscaler port.Upscaler, ttl time.Duration) *Sessions {
	return &Sessions{
		converter: converter,
		upscaler:  upscaler,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// NewKey returns a fresh random session key.
func NewKey() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Get returns the workflow for key, creating it if needed, and marks the session as active.
func (s *Sessions) Get(key string) *Workflow {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		log.Debug().Str("session", key).Msg("creating session")
		sess = &session{workflow: NewWorkflow(s.converter, s.upscaler)}
		s.sessions[key] = sess
	}
	sess.lastSeen = s.now()

	return sess.workflow
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for key, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			sess.workflow.Reset()
			delete(s.sessions, key)
			removed++
		}
	}

	return removed
}

// Janitor sweeps idle sessions every interval until ctx is done.
func (s *Sessions) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug().Int("evicted", n).Int("active", s.Len()).Msg("swept idle sessions")
			}
		case <-ctx.Done():
			log.Debug().Msg("stopping session janitor")
			return
		}
	}
}
