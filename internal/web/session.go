package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/budogu-admin/internal/dashboard"
)

// SessionCookieName identifies the dashboard session of a browser.
const SessionCookieName = "budogu_session"

type session struct {
	id   string
	ctrl *dashboard.Controller

	mu       sync.Mutex
	lastSeen time.Time
	loading  bool
	freshAt  time.Time
}

// freshWindow bounds how long after a mutation the redirected page view may
// skip its fetch.
const freshWindow = 5 * time.Second

// beginLoad claims the first fetch of the session. It returns false while
// another request is already performing it.
func (s *session) beginLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *session) endLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// markFresh records that the list was just settled by a mutation, so the
// redirected page view can skip its fetch.
func (s *session) markFresh(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freshAt = now
}

// takeFresh reports whether markFresh ran within freshWindow and clears
// the mark.
func (s *session) takeFresh(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := !s.freshAt.IsZero() && now.Sub(s.freshAt) < freshWindow
	s.freshAt = time.Time{}
	return fresh
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// sessions maps session cookies to controllers. At most limit sessions are
// kept; a new one displaces the least recently seen.
type sessions struct {
	catalog dashboard.Catalog
	ttl     time.Duration
	limit   int
	secure  bool

	mu   sync.Mutex
	byID map[string]*session
}

func newSessions(catalog dashboard.Catalog, ttl time.Duration, limit int, secure bool) *sessions {
	return &sessions{
		catalog: catalog,
		ttl:     ttl,
		limit:   limit,
		secure:  secure,
		byID:    make(map[string]*session),
	}
}

// get returns the session of the request, starting a new one and setting
// its cookie when the request has none or an expired one.
func (ss *sessions) get(w http.ResponseWriter, r *http.Request) *session {
	now := time.Now()
	if c, err := r.Cookie(SessionCookieName); err == nil {
		ss.mu.Lock()
		s, ok := ss.byID[c.Value]
		ss.mu.Unlock()
		if ok {
			s.touch(now)
			return s
		}
	}

	s := &session{
		id:       uuid.NewString(),
		ctrl:     dashboard.NewController(ss.catalog),
		lastSeen: now,
	}
	ss.mu.Lock()
	if ss.limit > 0 && len(ss.byID) >= ss.limit {
		ss.dropOldest()
	}
	ss.byID[s.id] = s
	ss.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    s.id,
		Path:     "/",
		HttpOnly: true,
		Secure:   ss.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// evict forgets sessions idle for longer than the TTL.
func (ss *sessions) evict(now time.Time) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	n := 0
	for id, s := range ss.byID {
		if s.idleSince(now) >= ss.ttl {
			delete(ss.byID, id)
			n++
		}
	}
	return n
}

// dropOldest removes the least recently seen session. ss.mu must be held.
func (ss *sessions) dropOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range ss.byID {
		s.mu.Lock()
		seen := s.lastSeen
		s.mu.Unlock()
		if oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	delete(ss.byID, oldestID)
}

func (ss *sessions) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.byID)
}

func (ss *sessions) startEviction(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(ss.ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				ss.evict(now)
			}
		}
	}()
}
