package panel

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/layout"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/split"
)

type stubSession struct {
	mu         sync.Mutex
	id         string
	title      string
	running    bool
	starts     int
	terminated bool
	chdirs     []string
}

func (s *stubSession) ID() string { return s.id }

func (s *stubSession) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *stubSession) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *stubSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	s.starts++
	return nil
}

func (s *stubSession) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.terminated = true
}

func (s *stubSession) Send(string) error { return nil }

func (s *stubSession) ChangeDirectory(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chdirs = append(s.chdirs, path)
	return nil
}

func (s *stubSession) Resize(int, int) error { return nil }

func (s *stubSession) setTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

func (s *stubSession) setRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = running
}

func (s *stubSession) chdirCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chdirs)
}

func (s *stubSession) lastChdir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.chdirs) == 0 {
		return ""
	}
	return s.chdirs[len(s.chdirs)-1]
}

func (s *stubSession) wasTerminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

type stubFactory struct {
	next    int
	created []*stubSession
	dirs    []string
	fail    bool
}

func (f *stubFactory) Create(workingDir, profile string, obs session.Observer) (session.Session, error) {
	if f.fail {
		return nil, errors.New("spawn refused")
	}
	f.next++
	s := &stubSession{id: fmt.Sprintf("s%d", f.next), title: fmt.Sprintf("shell %d", f.next)}
	f.created = append(f.created, s)
	f.dirs = append(f.dirs, workingDir)
	return s, nil
}

func newTestCoordinator(opts Options) (*Coordinator, *stubFactory) {
	f := &stubFactory{}
	return New(f, opts), f
}

func TestCreateTab(t *testing.T) {
	c, f := newTestCoordinator(Options{})

	d, err := c.CreateTab()
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}
	if d.ID != "s1" {
		t.Errorf("Expected tab id s1, got %s", d.ID)
	}
	if c.SelectedTab() != "s1" {
		t.Errorf("Expected s1 selected, got %s", c.SelectedTab())
	}
	if !f.created[0].IsRunning() {
		t.Error("Expected session started")
	}
	if got := c.Snapshot().Focused; got != "s1" {
		t.Errorf("Expected focus on s1, got %s", got)
	}
}

func TestCreateTabFactoryError(t *testing.T) {
	f := &stubFactory{fail: true}
	c := New(f, Options{})

	if _, err := c.CreateTab(); err == nil {
		t.Fatal("Expected error from failing factory")
	}
	if got := len(c.Tabs()); got != 0 {
		t.Errorf("Expected no tabs, got %d", got)
	}
}

func TestCreateSplit(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()

	id, err := c.CreateSplit("s1", split.ZoneRight)
	if err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}
	if id != "s2" {
		t.Errorf("Expected new session s2, got %s", id)
	}

	snap := c.Snapshot()
	if len(snap.Tabs) != 1 {
		t.Fatalf("Expected 1 tab, got %d", len(snap.Tabs))
	}
	if snap.Tabs[0].Panes != 2 {
		t.Errorf("Expected 2 panes, got %d", snap.Tabs[0].Panes)
	}
	root := snap.Tabs[0].Root
	if root.Type != layout.KindSplit || root.Axis != "horizontal" {
		t.Fatalf("Expected horizontal split root, got %+v", root)
	}
	if root.First.SessionID != "s1" || root.Second.SessionID != "s2" {
		t.Errorf("Expected [s1 s2], got [%s %s]", root.First.SessionID, root.Second.SessionID)
	}
	if !f.created[1].IsRunning() {
		t.Error("Expected new session started")
	}
	if snap.Focused != "s2" {
		t.Errorf("Expected focus on new pane, got %s", snap.Focused)
	}
	if c.SelectedTab() != "s1" {
		t.Error("Split must not change tab selection")
	}
}

func TestCreateSplitUnknownTarget(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()

	id, err := c.CreateSplit("ghost", split.ZoneLeft)
	if err != nil {
		t.Fatalf("Expected silent no-op, got error %v", err)
	}
	if id != "" {
		t.Errorf("Expected empty id, got %s", id)
	}
	if len(f.created) != 1 {
		t.Errorf("Expected no session allocated, got %d", len(f.created))
	}
}

func TestCreateSplitDoesNotSwitchTabs(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab() // s1
	c.CreateTab() // s2, selected

	// Splitting a pane in the unselected tab leaves selection alone
	// but records the new pane as that tab's preferred focus.
	id, _ := c.CreateSplit("s1", split.ZoneBottom)
	if id != "s3" {
		t.Fatalf("Expected s3, got %s", id)
	}
	if c.SelectedTab() != "s2" {
		t.Errorf("Expected selection to stay on s2, got %s", c.SelectedTab())
	}
	c.SelectTab("s1")
	if got := c.Snapshot().Focused; got != "s3" {
		t.Errorf("Expected focus to land on s3 after selecting, got %s", got)
	}
}

func TestCloseNestedPane(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)

	if !c.CloseSession("s2") {
		t.Fatal("CloseSession failed")
	}
	snap := c.Snapshot()
	if len(snap.Tabs) != 1 {
		t.Fatalf("Expected tab to survive, got %d tabs", len(snap.Tabs))
	}
	if snap.Tabs[0].Panes != 1 {
		t.Errorf("Expected 1 pane, got %d", snap.Tabs[0].Panes)
	}
	if snap.Tabs[0].Root.SessionID != "s1" {
		t.Errorf("Expected s1 to remain, got %s", snap.Tabs[0].Root.SessionID)
	}
	if !f.created[1].wasTerminated() {
		t.Error("Expected closed pane's session terminated")
	}
	if snap.Focused != "s1" {
		t.Errorf("Expected focus back on first pane, got %s", snap.Focused)
	}
}

func TestCloseTabByIdentity(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab() // s1
	c.CreateTab() // s2
	c.CreateTab() // s3, selected

	if !c.CloseSession("s1") {
		t.Fatal("CloseSession failed")
	}
	if got := len(c.Tabs()); got != 2 {
		t.Fatalf("Expected 2 tabs, got %d", got)
	}
	if !f.created[0].wasTerminated() {
		t.Error("Expected closed tab's session terminated")
	}
	if c.SelectedTab() != "s3" {
		t.Errorf("Expected selection to stay on s3, got %s", c.SelectedTab())
	}

	// Closing the selected last tab slides selection to the new last.
	if !c.CloseSession("s3") {
		t.Fatal("CloseSession failed")
	}
	if c.SelectedTab() != "s2" {
		t.Errorf("Expected selection on s2, got %s", c.SelectedTab())
	}
}

func TestCloseMultiPaneTabByIdentity(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)
	c.CreateTab() // keeps the panel non-empty afterwards

	// The tab id names the whole tab even with several panes inside.
	if !c.CloseSession("s1") {
		t.Fatal("CloseSession failed")
	}
	if got := len(c.Tabs()); got != 1 {
		t.Fatalf("Expected 1 tab, got %d", got)
	}
	if !f.created[0].wasTerminated() || !f.created[1].wasTerminated() {
		t.Error("Expected every pane of the closed tab terminated")
	}
}

func TestCloseLastTabSynthesizesReplacement(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()

	if !c.CloseSession("s1") {
		t.Fatal("CloseSession failed")
	}
	tabs := c.Tabs()
	if len(tabs) != 1 {
		t.Fatalf("Expected exactly one fresh tab, got %d", len(tabs))
	}
	if tabs[0].ID != "s2" {
		t.Errorf("Expected fresh tab s2, got %s", tabs[0].ID)
	}
	if !f.created[0].wasTerminated() {
		t.Error("Expected old session terminated")
	}
	if !f.created[1].IsRunning() {
		t.Error("Expected replacement session started")
	}
}

func TestCloseUnknownSession(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()

	if c.CloseSession("ghost") {
		t.Error("Expected unknown close to report false")
	}
	if got := len(c.Tabs()); got != 1 {
		t.Errorf("Expected tabs untouched, got %d", got)
	}
}

func TestSelectTabRestoresPreferredFocus(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()                        // s1
	c.CreateSplit("s1", split.ZoneRight) // s2, preferred in tab s1
	c.CreateTab()                        // s3, selected

	if !c.SelectTab("s1") {
		t.Fatal("SelectTab failed")
	}
	if got := c.Snapshot().Focused; got != "s2" {
		t.Errorf("Expected preferred pane s2 focused, got %s", got)
	}
	c.SelectTab("s3")
	if got := c.Snapshot().Focused; got != "s3" {
		t.Errorf("Expected s3 focused, got %s", got)
	}
}

func TestSelectTabFallsBackToFirstPane(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight) // preferred = s2
	c.CreateTab()

	// The preferred pane disappears while the tab is in the background.
	c.CloseSession("s2")
	c.SelectTab("s1")
	if got := c.Snapshot().Focused; got != "s1" {
		t.Errorf("Expected fallback to first pane s1, got %s", got)
	}
}

func TestSelectTabRestartsStoppedSession(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateTab()

	f.created[0].setRunning(false)
	c.SelectTab("s1")
	if !f.created[0].IsRunning() {
		t.Error("Expected stopped session lazily restarted on select")
	}
	if f.created[0].starts != 2 {
		t.Errorf("Expected 2 starts, got %d", f.created[0].starts)
	}
}

func TestSelectNextPreviousWraparound(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab() // s1
	c.CreateTab() // s2
	c.CreateTab() // s3, selected

	c.SelectNext()
	if c.SelectedTab() != "s1" {
		t.Errorf("Expected wrap to s1, got %s", c.SelectedTab())
	}
	c.SelectNext()
	if c.SelectedTab() != "s2" {
		t.Errorf("Expected s2, got %s", c.SelectedTab())
	}
	c.SelectPrevious()
	c.SelectPrevious()
	if c.SelectedTab() != "s3" {
		t.Errorf("Expected wrap back to s3, got %s", c.SelectedTab())
	}
}

func TestHandleDropMergesSinglePaneTab(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab() // tab s1, pane s1
	c.CreateTab() // tab s2, pane s2, selected

	if !c.HandleDrop("s2", split.ZoneLeft, "s1") {
		t.Fatal("HandleDrop failed")
	}
	snap := c.Snapshot()
	if len(snap.Tabs) != 1 {
		t.Fatalf("Expected source tab destroyed, got %d tabs", len(snap.Tabs))
	}
	root := snap.Tabs[0].Root
	if root.Type != layout.KindSplit {
		t.Fatal("Expected a split in destination tab")
	}
	if root.First.SessionID != "s2" || root.Second.SessionID != "s1" {
		t.Errorf("Expected [s2 s1], got [%s %s]", root.First.SessionID, root.Second.SessionID)
	}
	if c.SelectedTab() != "s1" {
		t.Errorf("Expected destination tab selected, got %s", c.SelectedTab())
	}
	if snap.Focused != "s2" {
		t.Errorf("Expected dragged session focused, got %s", snap.Focused)
	}
	if f.created[1].wasTerminated() {
		t.Error("Reparented session must not be terminated")
	}
}

func TestHandleDropMovesNestedPane(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()                        // tab s1
	c.CreateSplit("s1", split.ZoneRight) // s2 in tab s1
	c.CreateTab()                        // tab s3, selected

	if !c.HandleDrop("s2", split.ZoneTop, "s3") {
		t.Fatal("HandleDrop failed")
	}
	snap := c.Snapshot()
	if len(snap.Tabs) != 2 {
		t.Fatalf("Expected both tabs alive, got %d", len(snap.Tabs))
	}
	if snap.Tabs[0].Panes != 1 || snap.Tabs[0].Root.SessionID != "s1" {
		t.Errorf("Expected source tab collapsed to s1, got %+v", snap.Tabs[0])
	}
	destRoot := snap.Tabs[1].Root
	if destRoot.Type != layout.KindSplit || destRoot.Axis != "vertical" {
		t.Fatalf("Expected vertical split in destination, got %+v", destRoot)
	}
	if destRoot.First.SessionID != "s2" || destRoot.Second.SessionID != "s3" {
		t.Errorf("Expected [s2 s3], got [%s %s]", destRoot.First.SessionID, destRoot.Second.SessionID)
	}
	if snap.Focused != "s2" {
		t.Errorf("Expected dragged session focused, got %s", snap.Focused)
	}

	// The source tab's preferred pane left with the drag; selecting it
	// again falls back to the first remaining pane.
	c.SelectTab("s1")
	if got := c.Snapshot().Focused; got != "s1" {
		t.Errorf("Expected fallback focus on s1, got %s", got)
	}
}

func TestHandleDropEmptiesSourceTab(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()                        // tab s1
	c.CreateSplit("s1", split.ZoneRight) // s2
	c.CreateTab()                        // tab s3, selected

	// Moving s1 out leaves the source tab holding only s2; moving that
	// too empties and destroys it. Tab id s1 stays attached to a tab
	// that no longer contains the session it was named after.
	c.HandleDrop("s1", split.ZoneBottom, "s3")
	if !c.HandleDrop("s2", split.ZoneBottom, "s3") {
		t.Fatal("HandleDrop failed")
	}
	snap := c.Snapshot()
	if len(snap.Tabs) != 1 {
		t.Fatalf("Expected emptied source tab destroyed, got %d tabs", len(snap.Tabs))
	}
	if snap.Tabs[0].Panes != 3 {
		t.Errorf("Expected 3 panes in destination, got %d", snap.Tabs[0].Panes)
	}
}

func TestHandleDropSelfCenterNoop(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)
	before := c.Snapshot()

	if c.HandleDrop("s2", split.ZoneCenter, "s2") {
		t.Error("Expected self center drop to be a no-op")
	}
	after := c.Snapshot()
	if len(after.Tabs) != len(before.Tabs) || after.Tabs[0].Panes != before.Tabs[0].Panes {
		t.Error("Expected layout untouched")
	}
}

func TestHandleDropUnknownDragged(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()

	if c.HandleDrop("ghost", split.ZoneLeft, "s1") {
		t.Error("Expected unknown dragged id to be a no-op")
	}
}

func TestHandleDropUsesActiveDrag(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab() // s1
	c.CreateTab() // s2, selected

	c.BeginDrag("s1")
	if !c.HandleDrop("", split.ZoneRight, "s2") {
		t.Fatal("Expected drop to resolve the gesture in flight")
	}
	if c.ActiveDrag() != "" {
		t.Error("Expected drag state cleared after drop")
	}
	if got := len(c.Tabs()); got != 1 {
		t.Errorf("Expected merge, got %d tabs", got)
	}
}

func TestDragStateClearedOnFailedDrop(t *testing.T) {
	c, _ := newTestCoordinator(Options{})
	c.CreateTab()

	c.BeginDrag("ghost")
	c.HandleDrop("", split.ZoneLeft, "s1")
	if c.ActiveDrag() != "" {
		t.Error("Expected drag state cleared even when the drop fails")
	}

	c.BeginDrag("s1")
	c.CancelDrag()
	if c.ActiveDrag() != "" {
		t.Error("Expected drag state cleared on cancel")
	}
}

func TestUpdateWorkingDirectory(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)
	c.CreateTab()
	f.created[2].setRunning(false)

	c.UpdateWorkingDirectory("/work/project")
	if f.created[0].lastChdir() != "/work/project" {
		t.Errorf("Expected chdir on s1, got %q", f.created[0].lastChdir())
	}
	if f.created[1].lastChdir() != "/work/project" {
		t.Errorf("Expected chdir on s2, got %q", f.created[1].lastChdir())
	}
	if f.created[2].chdirCount() != 0 {
		t.Error("Expected stopped session skipped")
	}

	// New sessions pick the propagated directory up.
	c.CreateTab()
	if f.dirs[3] != "/work/project" {
		t.Errorf("Expected new session created in /work/project, got %q", f.dirs[3])
	}
}

func TestDeferredChdirAfterStart(t *testing.T) {
	c, f := newTestCoordinator(Options{WorkingDir: "/work", ChdirDelay: 5 * time.Millisecond})
	c.CreateTab()

	deadline := time.Now().Add(time.Second)
	for f.created[0].chdirCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if f.created[0].lastChdir() != "/work" {
		t.Errorf("Expected deferred chdir to /work, got %q", f.created[0].lastChdir())
	}
}

func TestDeferredChdirSkipsClosedSession(t *testing.T) {
	c, f := newTestCoordinator(Options{WorkingDir: "/work", ChdirDelay: 20 * time.Millisecond})
	c.CreateTab() // s1
	c.CloseSession("s1")

	time.Sleep(80 * time.Millisecond)
	if got := f.created[0].chdirCount(); got != 0 {
		t.Errorf("Expected no chdir on closed session, got %d", got)
	}
}

func TestDescriptorFollowsRootSessionOnly(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)

	// Title changes of a non-root pane never reach the descriptor.
	f.created[1].setTitle("vim")
	c.SessionChanged("s2")
	if got := c.Tabs()[0].Title; got != "shell 1" {
		t.Errorf("Expected descriptor title unchanged, got %q", got)
	}

	f.created[0].setTitle("make")
	c.SessionChanged("s1")
	if got := c.Tabs()[0].Title; got != "make" {
		t.Errorf("Expected descriptor to follow root session, got %q", got)
	}
}

func TestSessionExitedUpdatesDescriptor(t *testing.T) {
	var events []layout.Event
	f := &stubFactory{}
	c := New(f, Options{Events: func(e layout.Event) { events = append(events, e) }})
	c.CreateTab()

	f.created[0].setRunning(false)
	c.SessionExited("s1")
	if c.Tabs()[0].Running {
		t.Error("Expected descriptor running flag cleared")
	}

	found := false
	for _, e := range events {
		if e.Type == layout.EventSessionExited && e.SessionID == "s1" {
			found = true
		}
	}
	if !found {
		t.Error("Expected session_exited event")
	}
}

func TestEventSequence(t *testing.T) {
	var events []layout.Event
	f := &stubFactory{}
	c := New(f, Options{Events: func(e layout.Event) { events = append(events, e) }})

	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)
	c.RequestCollapse()

	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	want := []string{layout.EventTabsChanged, layout.EventLayoutChanged, layout.EventCollapseRequested}
	if len(types) != len(want) {
		t.Fatalf("Expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, types)
		}
	}
	if events[0].Panel == nil || len(events[0].Panel.Tabs) != 1 {
		t.Error("Expected structural event to carry a snapshot")
	}
}

func TestSessionOutputForwarded(t *testing.T) {
	var gotID string
	var gotData []byte
	f := &stubFactory{}
	c := New(f, Options{Output: func(id string, data []byte) {
		gotID = id
		gotData = data
	}})
	c.CreateTab()

	c.SessionOutput("s1", []byte("hello"))
	if gotID != "s1" || string(gotData) != "hello" {
		t.Errorf("Expected output forwarded, got %q %q", gotID, gotData)
	}
}

func TestShutdownTerminatesSessions(t *testing.T) {
	c, f := newTestCoordinator(Options{})
	c.CreateTab()
	c.CreateSplit("s1", split.ZoneRight)

	c.Shutdown()
	for i, s := range f.created {
		if !s.wasTerminated() {
			t.Errorf("Expected session %d terminated on shutdown", i+1)
		}
	}
}
