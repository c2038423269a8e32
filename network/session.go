package network

import (
	"log"

	"github.com/automoto/airhockey-mp/shared/messages"
	"github.com/automoto/airhockey-mp/shared/statevec"
)

type Role int

const (
	RoleSpectator Role = iota
	RolePaddle1
	RolePaddle2
)

func (r Role) String() string {
	switch r {
	case RoleSpectator:
		return "spectator"
	case RolePaddle1:
		return messages.PlayerOne
	case RolePaddle2:
		return messages.PlayerTwo
	}
	return "unknown"
}

// Paddle returns the paddle a role owns.
func (r Role) Paddle() (statevec.Paddle, bool) {
	switch r {
	case RolePaddle1:
		return statevec.Paddle1, true
	case RolePaddle2:
		return statevec.Paddle2, true
	}
	return 0, false
}

// ParseRole maps a wire designator to an owning role.
func ParseRole(designator string) (Role, bool) {
	switch designator {
	case messages.PlayerOne:
		return RolePaddle1, true
	case messages.PlayerTwo:
		return RolePaddle2, true
	}
	return RoleSpectator, false
}

// Session tracks which paddle this client owns. It starts as a spectator and
// accepts exactly one assignment. It is owned by the loop goroutine.
type Session struct {
	role     Role
	inactive bool
}

func NewSession() *Session {
	return &Session{role: RoleSpectator}
}

func (s *Session) Role() Role { return s.role }

// Owned returns the paddle this session drives, if any.
func (s *Session) Owned() (statevec.Paddle, bool) {
	return s.role.Paddle()
}

// Assign applies a role assignment. Unknown designators and any assignment
// after the first are logged and ignored.
func (s *Session) Assign(designator string) bool {
	role, ok := ParseRole(designator)
	if !ok {
		log.Printf("[session] ignoring unknown designator %q", designator)
		return false
	}
	if s.role != RoleSpectator {
		log.Printf("[session] ignoring assignment to %s, already %s", role, s.role)
		return false
	}
	s.role = role
	log.Printf("[session] assigned %s", role)
	return true
}

// MarkInactive records that the server dropped the session. It returns true
// the first time.
func (s *Session) MarkInactive() bool {
	if s.inactive {
		return false
	}
	s.inactive = true
	log.Println("[session] dropped for inactivity")
	return true
}

func (s *Session) Inactive() bool { return s.inactive }

// CanDriveInput reports whether local pointer input may move a paddle.
func (s *Session) CanDriveInput() bool {
	_, owns := s.role.Paddle()
	return owns && !s.inactive
}
