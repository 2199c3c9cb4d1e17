// Package testutil provides testing utilities and helpers for engine tests.
package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/layout"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/profile"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
)

// MockSession is a mock implementation of session.Session for testing.
type MockSession struct {
	mock.Mock
}

// ID mocks the ID method.
func (m *MockSession) ID() string {
	args := m.Called()
	return args.String(0)
}

// Title mocks the Title method.
func (m *MockSession) Title() string {
	args := m.Called()
	return args.String(0)
}

// IsRunning mocks the IsRunning method.
func (m *MockSession) IsRunning() bool {
	args := m.Called()
	return args.Bool(0)
}

// Start mocks the Start method.
func (m *MockSession) Start() error {
	args := m.Called()
	return args.Error(0)
}

// Terminate mocks the Terminate method.
func (m *MockSession) Terminate() {
	m.Called()
}

// Send mocks the Send method.
func (m *MockSession) Send(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

// ChangeDirectory mocks the ChangeDirectory method.
func (m *MockSession) ChangeDirectory(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// Resize mocks the Resize method.
func (m *MockSession) Resize(cols, rows int) error {
	args := m.Called(cols, rows)
	return args.Error(0)
}

// NewMockSession creates a mock session with default behaviors: it
// reports as running, and every control call succeeds.
func NewMockSession(t *testing.T, id string) *MockSession {
	t.Helper()
	m := new(MockSession)

	m.On("ID").Return(id).Maybe()
	m.On("Title").Return("shell " + id).Maybe()
	m.On("IsRunning").Return(true).Maybe()
	m.On("Start").Return(nil).Maybe()
	m.On("Terminate").Return().Maybe()
	m.On("Send", mock.Anything).Return(nil).Maybe()
	m.On("ChangeDirectory", mock.Anything).Return(nil).Maybe()
	m.On("Resize", mock.Anything, mock.Anything).Return(nil).Maybe()

	return m
}

// MockFactory is a mock implementation of session.Factory for testing.
type MockFactory struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockFactory) Create(workingDir, profileName string, obs session.Observer) (session.Session, error) {
	args := m.Called(workingDir, profileName, obs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(session.Session), args.Error(1)
}

// CountingFactory mints mock sessions with sequential ids (s1, s2, ...)
// and remembers the observer the panel registered, so tests can feed
// session callbacks back into the coordinator.
type CountingFactory struct {
	t *testing.T

	mu       sync.Mutex
	n        int
	sessions []*MockSession
	observer session.Observer
}

// NewCountingFactory creates a counting factory.
func NewCountingFactory(t *testing.T) *CountingFactory {
	t.Helper()
	return &CountingFactory{t: t}
}

// Create implements session.Factory.
func (f *CountingFactory) Create(workingDir, profileName string, obs session.Observer) (session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	s := NewMockSession(f.t, fmt.Sprintf("s%d", f.n))
	f.sessions = append(f.sessions, s)
	f.observer = obs
	return s, nil
}

// Observer returns the observer the panel registered with the last
// created session.
func (f *CountingFactory) Observer() session.Observer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.observer
}

// Created returns how many sessions the factory has minted.
func (f *CountingFactory) Created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

// EventRecorder collects panel events for assertions. Its Sink method
// is safe to hand to panel.Options.Events.
type EventRecorder struct {
	mu     sync.Mutex
	events []layout.Event
}

// Sink records one event.
func (r *EventRecorder) Sink(e layout.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Types returns the recorded event types in order.
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// Last returns the most recent event, if any.
func (r *EventRecorder) Last() (layout.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return layout.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset drops all recorded events.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// CreateTestProfile creates a valid shell profile for registry tests.
func CreateTestProfile(t *testing.T, name string) profile.Profile {
	t.Helper()
	return profile.Profile{
		Name:    name,
		Command: "/bin/sh",
		Args:    []string{"-l"},
		Title:   "Test Shell",
	}
}

// AssertSnapshotPanes is a helper to assert the pane count of one tab
// in a panel snapshot.
func AssertSnapshotPanes(t *testing.T, snap layout.PanelSnapshot, tab int, want int) {
	t.Helper()
	if tab >= len(snap.Tabs) {
		t.Fatalf("snapshot has %d tabs, want index %d", len(snap.Tabs), tab)
	}
	if got := snap.Tabs[tab].Panes; got != want {
		t.Fatalf("tab %d has %d panes, want %d", tab, got, want)
	}
}
