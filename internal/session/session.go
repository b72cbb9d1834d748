package session

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/connectbase/cbx/internal/shared"
)

// State is the client's belief about its server session.
type State int

const (
	// Anonymous means no live session is believed to exist.
	Anonymous State = iota
	// Authenticated means the client believes its cookies are valid.
	Authenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Store persists the advisory authenticated flag across restarts.
type Store interface {
	// Authenticated reads the persisted flag. A missing row reads as false.
	Authenticated() (bool, error)
	// SetAuthenticated writes the flag.
	SetAuthenticated(v bool) error
}

// Session is the single writer of the client's session state. All
// transitions go through its methods; everything else only reads.
type Session struct {
	mu     sync.Mutex
	state  State
	store  Store
	logger *log.Logger
}

// New creates a Session, restoring the initial state from the store.
// A store read failure is logged and the session starts Anonymous; the
// worst case is one redundant login prompt.
func New(store Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Session{state: Anonymous, store: store, logger: logger}
	if store != nil {
		ok, err := store.Authenticated()
		if err != nil {
			logger.Warn("failed to restore session flag", "error", err)
		} else if ok {
			s.state = Authenticated
		}
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticated reports whether the client believes it is logged in.
func (s *Session) Authenticated() bool {
	return s.State() == Authenticated
}

// LoginSucceeded transitions to Authenticated after a successful login
// or registration and persists the flag.
func (s *Session) LoginSucceeded() {
	s.transition(Authenticated)
}

// Logout transitions to Anonymous. The flag clears regardless of whether
// the server-side logout call succeeded; the user asked to be out.
func (s *Session) Logout() {
	s.transition(Anonymous)
}

// AuthRejected transitions to Anonymous because the server rejected a
// request with 401 or 403. Idempotent: several in-flight requests may all
// fail and report the same rejection.
func (s *Session) AuthRejected() {
	s.transition(Anonymous)
}

func (s *Session) transition(to State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == to {
		return
	}

	s.logger.Debug("session transition", "from", s.state, "to", to)
	s.state = to

	if s.store != nil {
		if err := s.store.SetAuthenticated(to == Authenticated); err != nil {
			s.logger.Warn("failed to persist session flag", "error", err)
		}
	}
}
