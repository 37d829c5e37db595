package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"forgepulse.app/tracker/internal/github"
	"forgepulse.app/tracker/internal/model"
	"forgepulse.app/tracker/internal/store"
)

// ActorEnricher lazily builds the profile cache. A profile is fetched
// the first time a login is tagged on an ingested event; once present
// it is never refreshed. A failed fetch leaves no profile, so the next
// run retries naturally.
type ActorEnricher interface {
	Ensure(ctx context.Context, login string) error
}

type actorEnricher struct {
	actors       store.ActorStore
	feeds        github.Feeds
	organization string
	logger       *slog.Logger
}

func NewActorEnricher(actors store.ActorStore, feeds github.Feeds, organization string, logger *slog.Logger) ActorEnricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &actorEnricher{
		actors:       actors,
		feeds:        feeds,
		organization: organization,
		logger:       logger,
	}
}

func (e *actorEnricher) Ensure(ctx context.Context, login string) error {
	if login == "" {
		return nil
	}

	exists, err := e.actors.Exists(ctx, login)
	if err != nil {
		return fmt.Errorf("checking actor cache: %w", err)
	}
	if exists {
		return nil
	}

	profile, err := e.feeds.Profile(ctx, login)
	if err != nil {
		e.logger.WarnContext(ctx, "actor enrichment deferred, profile fetch failed", "login", login, "error", err)
		return nil
	}

	orgs, err := e.feeds.Organizations(ctx, login)
	if err != nil {
		e.logger.WarnContext(ctx, "actor enrichment deferred, organization fetch failed", "login", login, "error", err)
		return nil
	}

	name := profile.Name
	if name == "" {
		name = login
	}

	actor := &model.Actor{
		Login:       login,
		Name:        name,
		AvatarURL:   profile.AvatarURL,
		Bio:         profile.Bio,
		IsOrgMember: e.organization != "" && slices.Contains(orgs, e.organization),
	}
	if err := e.actors.Create(ctx, actor); err != nil {
		return fmt.Errorf("caching actor profile: %w", err)
	}

	e.logger.InfoContext(ctx, "actor profile cached", "login", login, "is_org_member", actor.IsOrgMember)
	return nil
}
