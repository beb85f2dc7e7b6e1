package model

import "github.com/google/uuid"

type Role = string

const (
	RoleHost   Role = "host"
	RolePlayer Role = "player"
)

// User is one participant of a room. IsHost is redundant with Role and
// the two must agree; the host is fixed at room creation.
type User struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Role   Role      `json:"role"`
	IsHost bool      `json:"isHost"`
}

// NewUser builds a participant with Role and IsHost kept in agreement.
func NewUser(id uuid.UUID, name string, host bool) User {
	role := RolePlayer
	if host {
		role = RoleHost
	}
	return User{
		ID:     id,
		Name:   name,
		Role:   role,
		IsHost: host,
	}
}
