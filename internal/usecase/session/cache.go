package usecase_session

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/planningpoko/core/internal/model"
)

// RoomCache holds the last-known snapshot of every live room, keyed by
// room id, plus a secondary index from room code to room id. It is
// populated from storage at startup and rewritten after every mutating
// command; a snapshot handed to Put must not be mutated afterwards.
type RoomCache struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*model.Room
	codes map[string]uuid.UUID
}

func NewRoomCache() *RoomCache {
	return &RoomCache{
		rooms: make(map[uuid.UUID]*model.Room),
		codes: make(map[string]uuid.UUID),
	}
}

func (c *RoomCache) Put(room *model.Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms[room.ID] = room
	if room.Code != "" {
		c.codes[strings.ToUpper(room.Code)] = room.ID
	}
}

func (c *RoomCache) Get(roomID uuid.UUID) (*model.Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	room, ok := c.rooms[roomID]
	return room, ok
}

// Evict drops the room and whatever code mapping points at it, freeing
// the code for reuse.
func (c *RoomCache) Evict(roomID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.rooms, roomID)
	for code, id := range c.codes {
		if id == roomID {
			delete(c.codes, code)
			break
		}
	}
}

// ResolveCode maps a room code to the id of the live room holding it.
// Codes are matched case-insensitively.
func (c *RoomCache) ResolveCode(code string) (uuid.UUID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.codes[strings.ToUpper(code)]
	return id, ok
}

// FindRoomOf scans cached rooms for one the user is a member of. This
// is the reverse lookup used on disconnect, where the transport carries
// no room identifier.
func (c *RoomCache) FindRoomOf(userID uuid.UUID) (*model.Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, room := range c.rooms {
		if room.HasUser(userID) {
			return room, true
		}
	}
	return nil, false
}

func (c *RoomCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.rooms)
}
