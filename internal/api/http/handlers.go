package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/panel"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/profile"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/domain/split"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/infrastructure/resilience"
	"github.com/Soren-Starck/CotEditor-Terminal-Edition/internal/shared/utils"
)

// Handlers contains all panel HTTP handlers
type Handlers struct {
	panel    *panel.Coordinator
	profiles *profile.Registry
}

// NewHandlers creates a new handler set
func NewHandlers(coord *panel.Coordinator, profiles *profile.Registry) *Handlers {
	return &Handlers{
		panel:    coord,
		profiles: profiles,
	}
}

// splitRequest names the side of the target pane the new session lands on.
type splitRequest struct {
	Zone string `json:"zone" binding:"required"`
}

// dragRequest carries the payload the editor attached at drag start.
type dragRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// dropRequest completes a drag: the original payload plus where it landed.
type dropRequest struct {
	Payload  string `json:"payload" binding:"required"`
	Zone     string `json:"zone" binding:"required"`
	TargetID string `json:"target_id" binding:"required"`
}

// cwdRequest updates the panel's working directory.
type cwdRequest struct {
	Path string `json:"path" binding:"required"`
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "terminal-panel",
		"tabs":     len(h.panel.Tabs()),
		"selected": h.panel.SelectedTab(),
	})
}

// CreateTab opens a new tab with a fresh session and selects it
func (h *Handlers) CreateTab(c *gin.Context) {
	desc, err := h.panel.CreateTab()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tab": desc})
}

// CloseSession closes a pane, or the whole tab when the id is the tab's own
func (h *Handlers) CloseSession(c *gin.Context) {
	sessionID := c.Param("id")

	// Validate session ID
	if err := utils.ValidateID(sessionID, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed := h.panel.CloseSession(sessionID)

	c.JSON(http.StatusOK, gin.H{
		"changed":    changed,
		"session_id": sessionID,
	})
}

// SplitSession puts a fresh session next to the target pane
func (h *Handlers) SplitSession(c *gin.Context) {
	targetID := c.Param("id")

	// Validate target session ID
	if err := utils.ValidateID(targetID, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := split.ParseZone(req.Zone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newID, err := h.panel.CreateSplit(targetID, zone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changed":    newID != "",
		"session_id": newID,
	})
}

// SelectTab selects a tab by id
func (h *Handlers) SelectTab(c *gin.Context) {
	tabID := c.Param("id")

	// Validate tab ID
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed := h.panel.SelectTab(tabID)

	c.JSON(http.StatusOK, gin.H{
		"changed": changed,
		"tab_id":  tabID,
	})
}

// NextTab cycles the selection forward
func (h *Handlers) NextTab(c *gin.Context) {
	changed := h.panel.SelectNext()

	c.JSON(http.StatusOK, gin.H{
		"changed":  changed,
		"selected": h.panel.SelectedTab(),
	})
}

// PreviousTab cycles the selection backward
func (h *Handlers) PreviousTab(c *gin.Context) {
	changed := h.panel.SelectPrevious()

	c.JSON(http.StatusOK, gin.H{
		"changed":  changed,
		"selected": h.panel.SelectedTab(),
	})
}

// BeginDrag records which session a drag gesture picked up
func (h *Handlers) BeginDrag(c *gin.Context) {
	var req dragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, err := panel.DecodePayload([]byte(req.Payload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.panel.BeginDrag(sessionID)

	c.JSON(http.StatusOK, gin.H{"dragging": sessionID})
}

// CancelDrag clears drag state after an aborted gesture
func (h *Handlers) CancelDrag(c *gin.Context) {
	h.panel.CancelDrag()

	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// Drop lands a dragged session on a target pane's zone
func (h *Handlers) Drop(c *gin.Context) {
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draggedID, err := panel.DecodePayload([]byte(req.Payload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate target session ID
	if err := utils.ValidateID(req.TargetID, "target_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := split.ParseZone(req.Zone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed := h.panel.HandleDrop(draggedID, zone, req.TargetID)

	c.JSON(http.StatusOK, gin.H{
		"changed":    changed,
		"session_id": draggedID,
	})
}

// UpdateCwd points future tabs and idle shells at a new directory
func (h *Handlers) UpdateCwd(c *gin.Context) {
	var req cwdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The shells will cd here, so the directory must exist on this host
	if err := utils.ValidateDirectory(req.Path, "path", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.panel.UpdateWorkingDirectory(req.Path)

	c.JSON(http.StatusOK, gin.H{"path": req.Path})
}

// Collapse asks the editor to hide the panel
func (h *Handlers) Collapse(c *gin.Context) {
	h.panel.RequestCollapse()

	c.JSON(http.StatusOK, gin.H{"requested": true})
}

// Layout returns the full panel snapshot
func (h *Handlers) Layout(c *gin.Context) {
	snap := h.panel.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ListTabs lists tab descriptors in bar order
func (h *Handlers) ListTabs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tabs":     h.panel.Tabs(),
		"selected": h.panel.SelectedTab(),
	})
}

// ListProfiles lists the shell profiles sessions can start with
func (h *Handlers) ListProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"profiles": h.profiles.List(),
		"default":  h.profiles.DefaultName(),
	})
}

// respondError maps domain errors to HTTP statuses. An open spawn
// guard reports 503 so the editor backs off instead of hammering a
// broken profile.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, resilience.ErrOpen) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
