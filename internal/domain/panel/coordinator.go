package panel

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/layout"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/session"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/split"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/logging"
)

// DefaultChdirDelay sequences the initial directory change after the
// shell had a moment to finish its own startup.
const DefaultChdirDelay = 100 * time.Millisecond

// Metrics receives structural counters from the coordinator. The
// monitoring package provides the Prometheus implementation.
type Metrics interface {
	PanelChanged(tabs, panes int)
	SplitCreated(axis string)
	DropHandled(zone string)
	SessionStarted()
	SessionExited()
}

// Options configures a Coordinator. Zero values get sane defaults;
// Metrics, Events, and Output may be nil.
type Options struct {
	// WorkingDir is the directory new sessions start in until the host
	// propagates another one.
	WorkingDir string
	// Profile names the shell profile for new sessions; empty selects
	// the factory's default.
	Profile string
	// ChdirDelay is the pause before the post-start directory change.
	ChdirDelay time.Duration
	Logger     *logging.Logger
	Metrics    Metrics
	// Events receives a notification after every observable change.
	// Called with the coordinator lock held; sinks must only enqueue.
	Events func(layout.Event)
	// Output receives raw session output. Called from session
	// goroutines without the coordinator lock.
	Output func(sessionID string, data []byte)
}

// Coordinator owns every tab and routes create, close, select, and
// drag-drop gestures between the tab bar and the split trees. All
// mutation is serialized through one mutex, which stands in for the
// single UI thread the engine is modeled on: no operation blocks, and
// session lifecycle calls are fire-and-forget.
type Coordinator struct {
	mu      sync.Mutex
	factory session.Factory
	bar     *Bar
	cwd     string
	profile string
	delay   time.Duration
	focused string
	// drag is the session id of the gesture in flight, cleared
	// unconditionally on every drop or cancel.
	drag    string
	pending map[string]*time.Timer
	closed  bool
	log     *zap.Logger
	metrics Metrics
	events  func(layout.Event)
	output  func(string, []byte)
}

// New creates a coordinator with no tabs. Callers normally create the
// first tab right away; the panel keeps at least one from then on.
func New(factory session.Factory, opts Options) *Coordinator {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.ChdirDelay <= 0 {
		opts.ChdirDelay = DefaultChdirDelay
	}
	return &Coordinator{
		factory: factory,
		bar:     NewBar(),
		cwd:     opts.WorkingDir,
		profile: opts.Profile,
		delay:   opts.ChdirDelay,
		pending: make(map[string]*time.Timer),
		log:     opts.Logger.Component("panel"),
		metrics: opts.Metrics,
		events:  opts.Events,
		output:  opts.Output,
	}
}

// CreateTab allocates a fresh session, roots a new tab on it, selects
// the tab, and starts the session.
func (c *Coordinator) CreateTab() (Descriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.factory.Create(c.cwd, c.profile, c)
	if err != nil {
		c.log.Error("session create failed", zap.Error(err))
		return Descriptor{}, err
	}

	t := newTab(s)
	c.bar.Add(t)
	c.bar.Select(c.bar.Index(t.id))
	c.focused = s.ID()
	c.startSession(s)

	c.log.Info("tab created", zap.String("tab_id", t.id))
	c.recordPanel()
	c.publish(layout.EventTabsChanged)
	return t.Descriptor(), nil
}

// CreateSplit puts a fresh session next to the target pane on the side
// the zone names. Unknown targets are a silent no-op with an empty id.
// Tab selection does not change; the new pane becomes the owning tab's
// preferred focus.
func (c *Coordinator) CreateSplit(targetID string, zone split.Zone) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.bar.OwnerOf(targetID)
	if t == nil {
		c.log.Debug("split target not found", zap.String("session_id", targetID))
		return "", nil
	}

	s, err := c.factory.Create(c.cwd, c.profile, c)
	if err != nil {
		c.log.Error("session create failed", zap.Error(err))
		return "", err
	}

	t.container.AddSession(s, targetID, zone)
	t.preferred = s.ID()
	if t == c.bar.Selected() {
		c.focused = s.ID()
	}
	c.startSession(s)

	axis, _ := zone.Placement()
	if c.metrics != nil {
		c.metrics.SplitCreated(string(axis))
	}
	c.log.Info("pane split",
		zap.String("tab_id", t.id),
		zap.String("target", targetID),
		zap.String("zone", string(zone)))
	c.recordPanel()
	c.publish(layout.EventLayoutChanged)
	return s.ID(), nil
}

// CloseSession closes a pane or a whole tab. An id matching a tab's
// own identity tears the entire tab down, its sessions included; any
// other id closes just that pane, collapsing the split around it. The
// panel is never left without a tab: closing the last one synthesizes
// a fresh tab in its place. Unknown ids report false.
func (c *Coordinator) CloseSession(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.bar.Index(id); i >= 0 {
		c.closeTab(i)
		c.recordPanel()
		c.publish(layout.EventTabsChanged)
		return true
	}

	t := c.bar.OwnerOf(id)
	if t == nil {
		return false
	}
	n := t.container.Find(id)
	s := n.Session()
	t.container.RemoveSession(id)
	c.cancelChdir(id)
	s.Terminate()

	if t.container.Empty() {
		c.closeTab(c.bar.Index(t.id))
		c.recordPanel()
		c.publish(layout.EventTabsChanged)
		return true
	}

	first := t.container.Sessions()[0]
	t.preferred = first.ID()
	if t == c.bar.Selected() {
		c.focused = first.ID()
	}
	c.log.Info("pane closed", zap.String("tab_id", t.id), zap.String("session_id", id))
	c.recordPanel()
	c.publish(layout.EventLayoutChanged)
	return true
}

// closeTab tears down the tab at position i: terminates its sessions,
// drops the descriptor, and repairs the selection. Caller holds the
// lock.
func (c *Coordinator) closeTab(i int) {
	t := c.bar.At(i)
	if t == nil {
		return
	}
	for _, s := range t.container.Sessions() {
		c.cancelChdir(s.ID())
		s.Terminate()
	}
	wasSelected := i == c.bar.SelectedIndex()
	c.bar.RemoveAt(i)
	c.log.Info("tab closed", zap.String("tab_id", t.id))

	if c.bar.Len() == 0 {
		c.synthesizeTab()
		return
	}
	if wasSelected {
		c.applySelection(c.bar.Selected())
	}
}

// synthesizeTab replaces the last closed tab so the panel never shows
// zero tabs. Caller holds the lock.
func (c *Coordinator) synthesizeTab() {
	s, err := c.factory.Create(c.cwd, c.profile, c)
	if err != nil {
		c.log.Error("replacement session create failed", zap.Error(err))
		return
	}
	t := newTab(s)
	c.bar.Add(t)
	c.bar.Select(c.bar.Index(t.id))
	c.focused = s.ID()
	c.startSession(s)
	c.log.Info("tab synthesized", zap.String("tab_id", t.id))
}

// SelectTab makes the named tab current and restores focus to its
// preferred pane, starting that pane's session again if it stopped.
func (c *Coordinator) SelectTab(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.bar.Index(id)
	if i < 0 {
		return false
	}
	c.bar.Select(i)
	c.applySelection(c.bar.Selected())
	c.publish(layout.EventTabsChanged)
	return true
}

// SelectNext moves the selection forward with wraparound.
func (c *Coordinator) SelectNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.bar.Next()
	if t == nil {
		return false
	}
	c.applySelection(t)
	c.publish(layout.EventTabsChanged)
	return true
}

// SelectPrevious moves the selection backward with wraparound.
func (c *Coordinator) SelectPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.bar.Previous()
	if t == nil {
		return false
	}
	c.applySelection(t)
	c.publish(layout.EventTabsChanged)
	return true
}

// applySelection restores focus inside a newly selected tab: the
// remembered preferred pane when it still exists, the first pane
// otherwise. A stopped session is lazily started. Caller holds the
// lock.
func (c *Coordinator) applySelection(t *Tab) {
	if t == nil {
		return
	}
	target := t.preferred
	if target == "" || t.container.Find(target) == nil {
		sessions := t.container.Sessions()
		if len(sessions) == 0 {
			return
		}
		target = sessions[0].ID()
	}
	t.preferred = target
	c.focused = target
	if n := t.container.Find(target); n != nil {
		if s := n.Session(); s != nil && !s.IsRunning() {
			c.startSession(s)
		}
	}
}

// BeginDrag records the session id a drag gesture carries.
func (c *Coordinator) BeginDrag(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag = sessionID
}

// CancelDrag clears the gesture without a drop.
func (c *Coordinator) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag = ""
}

// ActiveDrag returns the session id of the gesture in flight.
func (c *Coordinator) ActiveDrag() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag
}

// HandleDrop lands a drag gesture. draggedID falls back to the gesture
// in flight when empty; targetID resolves the destination tab, the
// selected tab when empty. Dropping a single-pane tab merges it into
// the destination and destroys the source tab; dropping a nested pane
// moves just that pane, tearing the source tab down if it empties.
// Focus ends on the dragged session. Drag state clears on every path.
// Reports whether anything changed.
func (c *Coordinator) HandleDrop(draggedID string, zone split.Zone, targetID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.drag = "" }()

	if draggedID == "" {
		draggedID = c.drag
	}
	if draggedID == "" {
		return false
	}
	// Dropping a pane onto its own center is a no-op.
	if zone == split.ZoneCenter && draggedID == targetID {
		return false
	}

	var dest *Tab
	if targetID != "" {
		dest = c.bar.OwnerOf(targetID)
	}
	if dest == nil {
		dest = c.bar.Selected()
	}
	if dest == nil {
		return false
	}

	if src := c.bar.ByID(draggedID); src != nil && src.container.Count() == 1 {
		return c.mergeTab(src, dest, zone, targetID)
	}
	return c.movePane(draggedID, dest, zone, targetID)
}

// mergeTab reparents a single-pane tab's session into dest and deletes
// the source tab. Caller holds the lock.
func (c *Coordinator) mergeTab(src, dest *Tab, zone split.Zone, targetID string) bool {
	if src == dest {
		return false
	}
	s := src.container.Sessions()[0]
	c.bar.RemoveAt(c.bar.Index(src.id))
	dest.container.AddSession(s, targetID, zone)
	c.bar.Select(c.bar.Index(dest.id))
	dest.preferred = s.ID()
	c.focused = s.ID()

	c.log.Info("tab merged",
		zap.String("source", src.id),
		zap.String("dest", dest.id),
		zap.String("zone", string(zone)))
	c.finishDrop(zone)
	return true
}

// movePane relocates one nested pane to dest, collapsing the split it
// left behind and tearing down its tab if nothing remains. Caller
// holds the lock.
func (c *Coordinator) movePane(draggedID string, dest *Tab, zone split.Zone, targetID string) bool {
	src := c.bar.OwnerOf(draggedID)
	if src == nil {
		return false
	}
	s := src.container.Find(draggedID).Session()
	src.container.RemoveSession(draggedID)
	dest.container.AddSession(s, targetID, zone)

	if src != dest && src.container.Empty() {
		wasSelected := src == c.bar.Selected()
		c.bar.RemoveAt(c.bar.Index(src.id))
		if wasSelected {
			c.bar.Select(c.bar.Index(dest.id))
		}
	}
	dest.preferred = s.ID()
	if dest == c.bar.Selected() {
		c.focused = s.ID()
	}

	c.log.Info("pane moved",
		zap.String("session_id", draggedID),
		zap.String("source", src.id),
		zap.String("dest", dest.id),
		zap.String("zone", string(zone)))
	c.finishDrop(zone)
	return true
}

func (c *Coordinator) finishDrop(zone split.Zone) {
	if c.metrics != nil {
		c.metrics.DropHandled(string(zone))
	}
	c.recordPanel()
	c.publish(layout.EventTabsChanged)
	c.publish(layout.EventLayoutChanged)
}

// UpdateWorkingDirectory remembers the panel-wide directory for new
// sessions and asks every running session to follow it. Tree structure
// is untouched.
func (c *Coordinator) UpdateWorkingDirectory(path string) {
	c.mu.Lock()
	c.cwd = path
	var all []session.Session
	for i := 0; i < c.bar.Len(); i++ {
		all = append(all, c.bar.At(i).container.Sessions()...)
	}
	c.mu.Unlock()

	for _, s := range all {
		if !s.IsRunning() {
			continue
		}
		if err := s.ChangeDirectory(path); err != nil {
			c.log.Warn("directory change failed",
				zap.String("session_id", s.ID()), zap.Error(err))
		}
	}
}

// RequestCollapse asks the host to hide the whole panel.
func (c *Coordinator) RequestCollapse() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.events != nil {
		c.events(layout.Event{Type: layout.EventCollapseRequested})
	}
}

// Tabs returns the current bar view in order.
func (c *Coordinator) Tabs() []Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bar.Descriptors()
}

// SelectedTab returns the selected tab's id, empty when no tabs exist.
func (c *Coordinator) SelectedTab() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.bar.Selected(); t != nil {
		return t.id
	}
	return ""
}

// Snapshot captures the whole panel for clients.
func (c *Coordinator) Snapshot() layout.PanelSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() layout.PanelSnapshot {
	snap := layout.PanelSnapshot{Focused: c.focused}
	for i := 0; i < c.bar.Len(); i++ {
		t := c.bar.At(i)
		snap.Tabs = append(snap.Tabs, layout.TabSnapshot{
			ID:       t.id,
			Title:    t.title,
			Running:  t.running,
			Selected: i == c.bar.SelectedIndex(),
			Panes:    t.container.Count(),
			Root:     layout.CaptureNode(t.container.Root()),
		})
	}
	return snap
}

// Session returns the live session with the given id, nil if unknown.
// Used by the stream layer to route input and resize frames.
func (c *Coordinator) Session(id string) session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.bar.OwnerOf(id); t != nil {
		if n := t.container.Find(id); n != nil {
			return n.Session()
		}
	}
	return nil
}

// Shutdown terminates every session and stops pending timers. The
// coordinator must not be used afterwards.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, timer := range c.pending {
		timer.Stop()
		delete(c.pending, id)
	}
	for i := 0; i < c.bar.Len(); i++ {
		for _, s := range c.bar.At(i).container.Sessions() {
			s.Terminate()
		}
	}
	c.log.Info("panel shut down", zap.Int("tabs", c.bar.Len()))
}

// SessionChanged implements session.Observer. Descriptor state follows
// the session whose id matches the tab's own identity; changes to other
// panes leave the descriptor alone, so a multi-pane tab's title can go
// stale on purpose.
func (c *Coordinator) SessionChanged(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.bar.ByID(id)
	if t == nil {
		return
	}
	owner := c.bar.OwnerOf(id)
	if owner == nil {
		return
	}
	s := owner.container.Find(id).Session()
	t.title = s.Title()
	t.running = s.IsRunning()
	c.publish(layout.EventTabsChanged)
}

// SessionExited implements session.Observer. The pane stays in place;
// only the running indicator and stream clients are told.
func (c *Coordinator) SessionExited(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.SessionExited()
	}
	if t := c.bar.ByID(id); t != nil {
		t.running = false
		c.publish(layout.EventTabsChanged)
	}
	if c.events != nil {
		c.events(layout.Event{Type: layout.EventSessionExited, SessionID: id})
	}
	c.log.Info("session exited", zap.String("session_id", id))
}

// SessionOutput implements session.Observer, forwarding raw output to
// the stream layer.
func (c *Coordinator) SessionOutput(id string, data []byte) {
	if c.output != nil {
		c.output(id, data)
	}
}

// startSession starts s and schedules the one-shot directory change
// behind it. Start failures are logged, not returned: the pane exists
// either way and the session reports its own state. Caller holds the
// lock.
func (c *Coordinator) startSession(s session.Session) {
	if err := s.Start(); err != nil {
		c.log.Error("session start failed",
			zap.String("session_id", s.ID()), zap.Error(err))
		return
	}
	if c.metrics != nil {
		c.metrics.SessionStarted()
	}
	if c.cwd != "" {
		c.scheduleChdir(s.ID())
	}
}

// scheduleChdir arms the deferred directory change for a session just
// started. Caller holds the lock.
func (c *Coordinator) scheduleChdir(id string) {
	if t, ok := c.pending[id]; ok {
		t.Stop()
	}
	c.pending[id] = time.AfterFunc(c.delay, func() { c.deferredChdir(id) })
}

// deferredChdir fires once after the startup delay. The session is
// looked up again first: a pane closed in the meantime must not be
// touched.
func (c *Coordinator) deferredChdir(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	if c.closed {
		c.mu.Unlock()
		return
	}
	cwd := c.cwd
	var target session.Session
	if t := c.bar.OwnerOf(id); t != nil {
		target = t.container.Find(id).Session()
	}
	c.mu.Unlock()

	if target == nil || cwd == "" || !target.IsRunning() {
		return
	}
	if err := target.ChangeDirectory(cwd); err != nil {
		c.log.Warn("deferred directory change failed",
			zap.String("session_id", id), zap.Error(err))
	}
}

// cancelChdir drops a pending deferred directory change. Caller holds
// the lock.
func (c *Coordinator) cancelChdir(id string) {
	if t, ok := c.pending[id]; ok {
		t.Stop()
		delete(c.pending, id)
	}
}

func (c *Coordinator) recordPanel() {
	if c.metrics == nil {
		return
	}
	panes := 0
	for i := 0; i < c.bar.Len(); i++ {
		panes += c.bar.At(i).container.Count()
	}
	c.metrics.PanelChanged(c.bar.Len(), panes)
}

func (c *Coordinator) publish(eventType string) {
	if c.events == nil {
		return
	}
	snap := c.snapshotLocked()
	c.events(layout.Event{Type: eventType, Panel: &snap})
}
