package session

// Session is one running terminal: an opaque identity plus the control
// surface the panel consumes. Implementations own the shell process and
// its display surface; the split tree only decides placement.
//
// Start, Send, and ChangeDirectory are fire-and-forget from the panel's
// point of view: errors are logged by callers, never folded into tree
// state. Completion is observed later through the Observer.
type Session interface {
	// ID returns the session's unique identifier (a UUID string).
	ID() string

	// Title returns the session's displayable title.
	Title() string

	// IsRunning reports whether the underlying process is alive.
	IsRunning() bool

	// Start launches the underlying process. Safe to call on an
	// already-running session (no-op).
	Start() error

	// Terminate stops the process and releases its resources.
	// Idempotent.
	Terminate()

	// Send writes text to the session's input.
	Send(text string) error

	// ChangeDirectory asks the shell to change its working directory.
	ChangeDirectory(path string) error

	// Resize updates the terminal dimensions.
	Resize(cols, rows int) error
}

// Observer receives state changes a session publishes: title updates,
// running-flag flips, and process exit. Sessions deliver these from
// their own goroutines, never from inside Start, Send, or Terminate,
// so an observer may take the same lock its callers hold around those
// methods. Implementations must not call back into the session from
// these methods.
type Observer interface {
	// SessionChanged fires when a session's title or running state
	// changed.
	SessionChanged(id string)

	// SessionExited fires when the underlying process ended on its own.
	SessionExited(id string)

	// SessionOutput delivers raw output bytes read from the session.
	SessionOutput(id string, data []byte)
}

// Factory creates sessions on behalf of the panel coordinator.
type Factory interface {
	// Create allocates a new session rooted at workingDir using the
	// named profile ("" selects the default profile). The observer
	// receives the session's published changes for its whole lifetime.
	Create(workingDir, profile string, obs Observer) (Session, error)
}
