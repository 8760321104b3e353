package worktree

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/treehop/treehop/internal/log"
	"github.com/treehop/treehop/internal/storage"
)

// State is where a Session sits in the deletion policy.
type State int

const (
	StateIdle                State = iota // next delete is unforced
	StatePendingConfirmation              // a delete is waiting on the confirmer
	StateForced                           // next delete is forced
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingConfirmation:
		return "pending-confirmation"
	case StateForced:
		return "forced"
	}
	return "unknown"
}

// ForceStore persists the force flag between processes.
type ForceStore interface {
	LoadForce() (bool, error)
	SaveForce(forced bool) error
}

// Session holds the force flag for a sequence of deletions. It is owned by
// the caller and not safe for concurrent use.
type Session struct {
	forced  bool
	pending bool
	store   ForceStore
}

// NewSession returns an idle in-memory session.
func NewSession() *Session {
	return &Session{}
}

// LoadSession returns a session whose force flag is read from and written
// back to store.
func LoadSession(store ForceStore) (*Session, error) {
	forced, err := store.LoadForce()
	if err != nil {
		return nil, err
	}
	return &Session{forced: forced, store: store}, nil
}

// Forced reports whether the next delete is forced.
func (s *Session) Forced() bool {
	return s.forced
}

// State returns the current policy state.
func (s *Session) State() State {
	switch {
	case s.pending:
		return StatePendingConfirmation
	case s.forced:
		return StateForced
	default:
		return StateIdle
	}
}

// ToggleForce flips the force flag and returns its new value.
func (s *Session) ToggleForce(ctx context.Context) bool {
	s.forced = !s.forced
	s.persist(ctx)

	l := log.FromContext(ctx)
	if s.forced {
		l.Println("Force mode enabled: the next delete will discard local changes")
	} else {
		l.Println("Force mode disabled")
	}
	return s.forced
}

// reset clears the force flag after a successful delete. Reports whether
// it was set.
func (s *Session) reset(ctx context.Context) bool {
	was := s.forced
	s.forced = false
	if was {
		s.persist(ctx)
	}
	return was
}

func (s *Session) beginConfirmation() { s.pending = true }
func (s *Session) endConfirmation()   { s.pending = false }

func (s *Session) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveForce(s.forced); err != nil {
		log.FromContext(ctx).Warnf("failed to save session: %v", err)
	}
}

// SessionFileName is the session file inside the state directory.
const SessionFileName = "session.json"

// FileStore keeps the force flag in a JSON file.
type FileStore struct {
	Path string
}

type sessionFile struct {
	Forced    bool      `json:"forced"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultFileStore returns a FileStore at ~/.treehop/session.json.
func DefaultFileStore() (*FileStore, error) {
	path, err := storage.File(SessionFileName)
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: path}, nil
}

// LoadForce returns false when the file does not exist.
func (f *FileStore) LoadForce() (bool, error) {
	var data sessionFile
	if err := storage.LoadJSON(f.Path, &data); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return data.Forced, nil
}

func (f *FileStore) SaveForce(forced bool) error {
	return storage.Update(f.Path, func() error {
		return storage.SaveJSON(f.Path, sessionFile{Forced: forced, UpdatedAt: time.Now()})
	})
}
