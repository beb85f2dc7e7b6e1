package usecase_session

import (
	"sync"

	"github.com/google/uuid"
)

// SessionRegistry maps a participant to the id of their live connection.
// It exists only so a transport-level disconnect, which carries no
// payload, can be traced back to the user that went away.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]string
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]string),
	}
}

func (r *SessionRegistry) Bind(userID uuid.UUID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = sessionID
}

func (r *SessionRegistry) Unbind(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
}

// FindUser reverse-scans for the user bound to the given session.
func (r *SessionRegistry) FindUser(sessionID string) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for userID, sid := range r.sessions {
		if sid == sessionID {
			return userID, true
		}
	}
	return uuid.Nil, false
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
