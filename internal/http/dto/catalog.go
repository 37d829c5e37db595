package dto

import (
	"time"

	"forgepulse.app/tracker/internal/model"
)

type EventResponse struct {
	ID          int64     `json:"id"`
	ExternalID  string    `json:"external_id"`
	Type        string    `json:"type"`
	Action      string    `json:"action,omitempty"`
	Category    string    `json:"category"`
	Repo        string    `json:"repo"`
	Actor       string    `json:"actor"`
	IssueNumber *int      `json:"issue_number,omitempty"`
	LinkURL     *string   `json:"link_url,omitempty"`
	LinkLabel   string    `json:"link_label"`
	CommitCount *int      `json:"commit_count,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func FromEventRecord(r model.EventRecord) EventResponse {
	return EventResponse{
		ID:          r.ID,
		ExternalID:  r.ExternalID,
		Type:        r.Type,
		Action:      r.Action,
		Category:    string(r.Category),
		Repo:        r.Repo,
		Actor:       r.Actor,
		IssueNumber: r.IssueNumber,
		LinkURL:     r.LinkURL,
		LinkLabel:   r.LinkLabel,
		CommitCount: r.CommitCount,
		OccurredAt:  r.OccurredAt,
	}
}

type IssueResponse struct {
	ID           int64     `json:"id"`
	Repo         string    `json:"repo"`
	Number       int       `json:"number"`
	Kind         string    `json:"kind"`
	State        string    `json:"state"`
	Title        string    `json:"title"`
	Labels       []string  `json:"labels"`
	CommentCount int       `json:"comment_count"`
	Creator      string    `json:"creator,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromIssue(i model.Issue) IssueResponse {
	labels := i.Labels
	if labels == nil {
		labels = []string{}
	}
	return IssueResponse{
		ID:           i.ID,
		Repo:         i.Repo,
		Number:       i.Number,
		Kind:         string(i.Kind),
		State:        string(i.State),
		Title:        i.Title,
		Labels:       labels,
		CommentCount: i.CommentCount,
		Creator:      i.Creator,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

type LabelTimelineResponse struct {
	Label       string     `json:"label"`
	IssueKey    string     `json:"issue_key"`
	Status      string     `json:"status"`
	LabeledAt   *time.Time `json:"labeled_at,omitempty"`
	UnlabeledAt *time.Time `json:"unlabeled_at,omitempty"`
}

func FromLabelTimeline(t model.LabelTimeline) LabelTimelineResponse {
	return LabelTimelineResponse{
		Label:       t.Label,
		IssueKey:    t.IssueKey,
		Status:      string(t.Status),
		LabeledAt:   t.LabeledAt,
		UnlabeledAt: t.UnlabeledAt,
	}
}

type ActorResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	IsOrgMember bool   `json:"is_org_member"`
}

func FromActor(a model.Actor) ActorResponse {
	return ActorResponse{
		Login:       a.Login,
		Name:        a.Name,
		AvatarURL:   a.AvatarURL,
		Bio:         a.Bio,
		IsOrgMember: a.IsOrgMember,
	}
}

type ReplayIssueRequest struct {
	Repo   string `json:"repo" binding:"required"`
	Number int    `json:"number" binding:"required"`
}
