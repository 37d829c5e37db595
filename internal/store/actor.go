package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"forgepulse.app/tracker/internal/model"
)

type actorStore struct {
	pool *pgxpool.Pool
}

func newActorStore(pool *pgxpool.Pool) ActorStore {
	return &actorStore{pool: pool}
}

func (s *actorStore) GetByLogin(ctx context.Context, login string) (*model.Actor, error) {
	var actor model.Actor
	err := s.pool.QueryRow(ctx, `
		SELECT login, name, avatar_url, bio, is_org_member, created_at
		FROM actors
		WHERE login = $1`,
		login,
	).Scan(&actor.Login, &actor.Name, &actor.AvatarURL, &actor.Bio, &actor.IsOrgMember, &actor.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching actor: %w", err)
	}
	return &actor, nil
}

func (s *actorStore) Exists(ctx context.Context, login string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM actors WHERE login = $1)`,
		login,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking actor existence: %w", err)
	}
	return exists, nil
}

func (s *actorStore) Create(ctx context.Context, actor *model.Actor) error {
	// Profiles are never refreshed once present.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO actors (login, name, avatar_url, bio, is_org_member)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (login) DO NOTHING`,
		actor.Login, actor.Name, actor.AvatarURL, actor.Bio, actor.IsOrgMember,
	)
	if err != nil {
		return fmt.Errorf("inserting actor: %w", err)
	}
	return nil
}
