package session

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
)

const (
	RoleBarber = "barber"
	RoleClient = "client"
)

// Context identifies who is calling. It replaces any per-user global
// state: everything transient is keyed by ID.
type Context struct {
	ID     string
	UserID string
	Role   string
}

func (c Context) IsBarber() bool { return c.Role == RoleBarber }

type Mode string

const (
	ModeNone  Mode = ""
	ModeOpen  Mode = "open"
	ModeClose Mode = "close"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOpen, ModeClose:
		return Mode(s), nil
	}
	return ModeNone, httperr.Validation("invalid_batch_mode")
}

// EditorState is the batch editor selection for one session.
type EditorState struct {
	Mode     Mode     `json:"mode"`
	BarberID string   `json:"barber_id"`
	Date     string   `json:"date"`
	Selected []string `json:"selected"`
}

func (s EditorState) Active() bool { return s.Mode != ModeNone }

// Toggle adds key when absent and removes it when present.
func (s *EditorState) Toggle(key string) (selected bool) {
	for i, k := range s.Selected {
		if k == key {
			s.Selected = append(s.Selected[:i], s.Selected[i+1:]...)
			return false
		}
	}
	s.Selected = append(s.Selected, key)
	return true
}

// Store holds editor state between requests. A missing session reads as
// an inactive state.
type Store interface {
	Load(ctx context.Context, sessionID string) (EditorState, error)
	Save(ctx context.Context, sessionID string, st EditorState) error
	Clear(ctx context.Context, sessionID string) error
}

type entry struct {
	state   EditorState
	expires time.Time
}
