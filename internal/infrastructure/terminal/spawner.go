package terminal

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/profile"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/logging"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/resilience"
)

// Config tunes spawned sessions.
type Config struct {
	// Cols and Rows are the initial PTY dimensions. Defaults: 80x24.
	Cols int
	Rows int

	// BufferSize bounds the per-session output backlog. Defaults to
	// DefaultBufferSize.
	BufferSize int

	// TranscriptDir, when non-empty, enables transcript recording into
	// that directory.
	TranscriptDir string
}

// Spawner creates PTY-backed sessions and implements session.Factory.
// One circuit breaker per profile name guards the spawn itself, so a
// profile whose command keeps failing is rejected fast instead of
// hot-looped.
type Spawner struct {
	registry *profile.Registry
	cfg      Config
	log      *zap.Logger

	mu       sync.Mutex
	breakers map[string]*resilience.Breaker
}

// NewSpawner creates a spawner resolving profiles from registry.
func NewSpawner(registry *profile.Registry, cfg Config, logger *logging.Logger) *Spawner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 24
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	return &Spawner{
		registry: registry,
		cfg:      cfg,
		log:      logger.Component("terminal"),
		breakers: make(map[string]*resilience.Breaker),
	}
}

// Create builds a session for the named profile without starting it.
// An empty or unknown profile name resolves to the registry default.
// A profile whose spawn breaker is open is refused outright: creating
// a pane that cannot start would only litter the layout with dead
// sessions.
func (sp *Spawner) Create(workingDir, profileName string, obs session.Observer) (session.Session, error) {
	p := sp.registry.Resolve(profileName)
	if sp.breakerFor(p.Name).State() == resilience.StateOpen {
		return nil, fmt.Errorf("profile %q: %w", p.Name, resilience.ErrOpen)
	}
	if obs == nil {
		obs = nopObserver{}
	}

	s := &Session{
		id:      uuid.NewString(),
		profile: p,
		dir:     workingDir,
		obs:     obs,
		buf:     NewBuffer(sp.cfg.BufferSize),
		log:     sp.log,
		cols:    sp.cfg.Cols,
		rows:    sp.cfg.Rows,
	}
	s.spawn = sp.guardedSpawn(p.Name)

	if sp.cfg.TranscriptDir != "" {
		rec, err := NewRecorder(sp.cfg.TranscriptDir)
		if err != nil {
			// Transcripts are best effort; the session still spawns.
			sp.log.Warn("transcript recorder unavailable",
				zap.String("session_id", s.id),
				zap.Error(err))
		} else {
			s.recorder = rec
			sp.log.Info("transcript enabled",
				zap.String("session_id", s.id),
				zap.String("path", rec.Path()))
		}
	}

	sp.log.Debug("session created",
		zap.String("session_id", s.id),
		zap.String("profile", p.Name),
		zap.String("working_dir", workingDir))
	return s, nil
}

// guardedSpawn wraps the PTY start in the profile's circuit breaker.
func (sp *Spawner) guardedSpawn(profileName string) spawnFunc {
	breaker := sp.breakerFor(profileName)
	return func(cmd *exec.Cmd, ws *pty.Winsize) (*os.File, error) {
		var ptmx *os.File
		err := breaker.Do(func() error {
			var spawnErr error
			ptmx, spawnErr = pty.StartWithSize(cmd, ws)
			return spawnErr
		})
		return ptmx, err
	}
}

// breakerFor returns the breaker guarding the named profile, creating
// it on first use.
func (sp *Spawner) breakerFor(name string) *resilience.Breaker {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if b, ok := sp.breakers[name]; ok {
		return b
	}
	b := resilience.New(name, resilience.Config{
		OnChange: func(name string, from, to resilience.State) {
			sp.log.Warn("spawn breaker state changed",
				zap.String("profile", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	sp.breakers[name] = b
	return b
}

// nopObserver stands in when a caller creates a session without an
// observer.
type nopObserver struct{}

func (nopObserver) SessionChanged(string)        {}
func (nopObserver) SessionExited(string)         {}
func (nopObserver) SessionOutput(string, []byte) {}
