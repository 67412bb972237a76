package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturador/internal/domain"
)

// Store sesiones vivas indexadas por id. Solo memoria: nada se persiste.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore construye el store vacío.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func newSessionID() string { return uuid.New().String() }

func (st *Store) add(s *Session) {
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
}

// Get busca la sesión. Devuelve domain.ErrSessionNotFound si no existe o expiró.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("editor: sesión %q: %w", id, domain.ErrSessionNotFound)
	}
	return s, nil
}

// Delete quita la sesión y cierra su superficie. Devuelve false si no existía.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.surface.Close()
	}
	return ok
}

// Len sesiones vivas.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep elimina las sesiones inactivas por más de ttl y devuelve sus ids.
func (st *Store) Sweep(now time.Time, ttl time.Duration) []string {
	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.idleSince(now) > ttl {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, s := range expired {
		s.surface.Close()
		ids = append(ids, s.id)
	}
	return ids
}

// Close cierra todas las sesiones.
func (st *Store) Close() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()
	for _, s := range all {
		s.surface.Close()
	}
}
