package terminal

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/profile"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
)

const readChunkSize = 4096

// DefaultBufferSize bounds the per-session output backlog.
const DefaultBufferSize = 256 * 1024

// spawnFunc starts cmd attached to a PTY of the given size. The
// spawner installs a circuit-breaker-wrapped pty start here.
type spawnFunc func(cmd *exec.Cmd, ws *pty.Winsize) (*os.File, error)

// Session is one shell process behind a PTY, implementing the panel's
// session contract. Start may be called again after the process exits;
// Terminate is final.
type Session struct {
	id       string
	profile  profile.Profile
	dir      string
	obs      session.Observer
	spawn    spawnFunc
	buf      *Buffer
	recorder *Recorder
	log      *zap.Logger

	mu         sync.Mutex
	cmd        *exec.Cmd
	ptmx       *os.File
	cols, rows int
	running    bool
	terminated bool
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Title returns the displayable title, fixed at creation from the
// profile.
func (s *Session) Title() string { return s.profile.DisplayTitle() }

// IsRunning reports whether the shell process is alive.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start spawns the shell. Calling Start on a running session is a
// no-op; calling it after a natural exit respawns the shell into the
// same pane.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.terminated {
		return fmt.Errorf("session %s is terminated", s.id)
	}

	cmd := exec.Command(s.profile.Command, s.profile.Args...)
	cmd.Dir = s.workingDir()
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	for key, value := range s.profile.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	ptmx, err := s.spawn(cmd, &pty.Winsize{
		Cols: uint16(s.cols),
		Rows: uint16(s.rows),
	})
	if err != nil {
		return fmt.Errorf("failed to start PTY: %w", err)
	}

	s.cmd = cmd
	s.ptmx = ptmx
	s.running = true
	s.log.Info("session started",
		zap.String("session_id", s.id),
		zap.String("command", s.profile.Command))

	go s.readOutput(ptmx)
	go s.monitorProcess(cmd, ptmx)
	go s.obs.SessionChanged(s.id)
	return nil
}

// workingDir resolves the directory precedence: the panel's directory,
// then the profile's, then home. Caller holds the lock.
func (s *Session) workingDir() string {
	if s.dir != "" {
		return s.dir
	}
	if s.profile.WorkingDir != "" {
		return s.profile.WorkingDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "/"
}

// readOutput pumps PTY output into the backlog buffer, the transcript,
// and the observer until the PTY closes.
func (s *Session) readOutput(ptmx *os.File) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			s.buf.Write(buf[:n])
			if s.recorder != nil {
				s.recorder.Write(buf[:n])
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			s.obs.SessionOutput(s.id, data)
		}
		if err != nil {
			if err != io.EOF {
				s.log.Debug("pty read ended", zap.String("session_id", s.id), zap.Error(err))
			}
			return
		}
	}
}

// monitorProcess waits for the shell to exit and flips the session to
// stopped, unless a restart already replaced this process.
func (s *Session) monitorProcess(cmd *exec.Cmd, ptmx *os.File) {
	cmd.Wait()

	s.mu.Lock()
	stale := s.cmd != cmd
	killed := s.terminated
	if !stale {
		s.running = false
		ptmx.Close()
	}
	s.mu.Unlock()
	if stale {
		return
	}

	if s.recorder != nil {
		s.recorder.Flush()
	}
	if !killed {
		s.log.Info("session exited", zap.String("session_id", s.id))
		s.obs.SessionExited(s.id)
	}
}

// Terminate kills the shell and releases the PTY and transcript.
// Idempotent; the session cannot be started again afterwards.
func (s *Session) Terminate() {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	s.running = false
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	if s.ptmx != nil {
		s.ptmx.Close()
	}
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.Close()
	}
	s.log.Info("session terminated", zap.String("session_id", s.id))
}

// Send writes text to the shell's input.
func (s *Session) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.ptmx == nil {
		return fmt.Errorf("session %s is not running", s.id)
	}
	_, err := s.ptmx.Write([]byte(text))
	return err
}

// ChangeDirectory asks the shell to cd. The path is single-quoted so
// spaces and shell metacharacters survive.
func (s *Session) ChangeDirectory(path string) error {
	return s.Send("cd " + quotePath(path) + "\n")
}

// Resize updates the PTY dimensions.
func (s *Session) Resize(cols, rows int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.ptmx == nil {
		return fmt.Errorf("session %s is not running", s.id)
	}
	s.cols = cols
	s.rows = rows
	return pty.Setsize(s.ptmx, &pty.Winsize{
		Cols: uint16(cols),
		Rows: uint16(rows),
	})
}

// Backlog returns the buffered recent output, for stream clients that
// attach after the session started.
func (s *Session) Backlog() []byte {
	return s.buf.Snapshot()
}

// quotePath wraps path in single quotes, escaping embedded quotes the
// POSIX way.
func quotePath(path string) string {
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}
