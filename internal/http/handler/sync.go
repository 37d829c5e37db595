package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"forgepulse.app/tracker/internal/http/dto"
	"forgepulse.app/tracker/internal/runlock"
	"forgepulse.app/tracker/internal/service"
)

// RunLock is the slice of the run lock the handler needs.
type RunLock interface {
	Acquire(ctx context.Context) (string, error)
	Release(ctx context.Context, token string) error
}

// SyncHandler triggers on-demand sync passes. The run lock guarantees
// at most one active pass; concurrent triggers get a 409 rather than
// queuing behind the running pass.
type SyncHandler struct {
	sync service.SyncService
	lock RunLock
}

func NewSyncHandler(sync service.SyncService, lock RunLock) *SyncHandler {
	return &SyncHandler{sync: sync, lock: lock}
}

func (h *SyncHandler) TriggerSync(c *gin.Context) {
	ctx := c.Request.Context()

	token, err := h.lock.Acquire(ctx)
	if err != nil {
		if errors.Is(err, runlock.ErrHeld) {
			c.JSON(http.StatusConflict, gin.H{"error": "a sync run is already in progress"})
			return
		}
		slog.ErrorContext(ctx, "failed to acquire run lock", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to acquire run lock"})
		return
	}
	defer func() {
		if err := h.lock.Release(ctx, token); err != nil {
			slog.ErrorContext(ctx, "failed to release run lock", "error", err)
		}
	}()

	summary := h.sync.Run(ctx)
	c.JSON(http.StatusOK, summary)
}

func (h *SyncHandler) ReplayIssue(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReplayIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repo and number are required"})
		return
	}

	stats, err := h.sync.ReplayIssue(ctx, req.Repo, req.Number)
	if err != nil {
		slog.ErrorContext(ctx, "failed to replay issue sub-events", "error", err, "repo", req.Repo, "number", req.Number)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to replay issue sub-events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": stats.Applied, "skipped": stats.Skipped})
}
