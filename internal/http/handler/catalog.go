package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"forgepulse.app/tracker/internal/http/dto"
	"forgepulse.app/tracker/internal/store"
)

// CatalogHandler serves exact-match queries over the persisted catalog.
type CatalogHandler struct {
	events    store.EventStore
	issues    store.IssueStore
	timelines store.LabelTimelineStore
	actors    store.ActorStore
}

func NewCatalogHandler(events store.EventStore, issues store.IssueStore, timelines store.LabelTimelineStore, actors store.ActorStore) *CatalogHandler {
	return &CatalogHandler{
		events:    events,
		issues:    issues,
		timelines: timelines,
		actors:    actors,
	}
}

func (h *CatalogHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.events.List(ctx, store.EventFilter{
		Category: c.Query("category"),
		Repo:     c.Query("repo"),
		Actor:    c.Query("actor"),
		Limit:    queryLimit(c),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	out := make([]dto.EventResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.FromEventRecord(r))
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func (h *CatalogHandler) ListIssues(c *gin.Context) {
	ctx := c.Request.Context()

	if number := c.Query("number"); number != "" {
		h.getIssue(c, c.Query("repo"), number)
		return
	}

	issues, err := h.issues.List(ctx, store.IssueFilter{
		Repo:    c.Query("repo"),
		State:   c.Query("state"),
		Kind:    c.Query("kind"),
		Creator: c.Query("creator"),
		Label:   c.Query("label"),
		Limit:   queryLimit(c),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list issues", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list issues"})
		return
	}

	out := make([]dto.IssueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, dto.FromIssue(i))
	}
	c.JSON(http.StatusOK, gin.H{"issues": out})
}

func (h *CatalogHandler) getIssue(c *gin.Context, repo, rawNumber string) {
	ctx := c.Request.Context()

	number, err := strconv.Atoi(rawNumber)
	if err != nil || repo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number requires a repo and must be an integer"})
		return
	}

	issue, err := h.issues.GetByRepoAndNumber(ctx, repo, number)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch issue", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch issue"})
		return
	}
	c.JSON(http.StatusOK, dto.FromIssue(*issue))
}

func (h *CatalogHandler) ListLabelTimelines(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.timelines.List(ctx, store.LabelTimelineFilter{
		Label:    c.Query("label"),
		IssueKey: c.Query("issue"),
		Limit:    queryLimit(c),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list label timelines", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list label timelines"})
		return
	}

	out := make([]dto.LabelTimelineResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, dto.FromLabelTimeline(t))
	}
	c.JSON(http.StatusOK, gin.H{"timelines": out})
}

func (h *CatalogHandler) GetActor(c *gin.Context) {
	ctx := c.Request.Context()

	actor, err := h.actors.GetByLogin(ctx, c.Param("login"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "actor not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to fetch actor", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch actor"})
		return
	}
	c.JSON(http.StatusOK, dto.FromActor(*actor))
}

func queryLimit(c *gin.Context) int32 {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			return int32(n)
		}
	}
	return 0
}
