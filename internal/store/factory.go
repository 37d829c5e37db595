package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Stores struct {
	pool *pgxpool.Pool
}

func NewStores(pool *pgxpool.Pool) *Stores {
	return &Stores{pool: pool}
}

func (s *Stores) Events() EventStore {
	return newEventStore(s.pool)
}

func (s *Stores) Issues() IssueStore {
	return newIssueStore(s.pool)
}

func (s *Stores) LabelTimelines() LabelTimelineStore {
	return newLabelTimelineStore(s.pool)
}

func (s *Stores) Actors() ActorStore {
	return newActorStore(s.pool)
}
