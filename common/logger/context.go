package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context. Fields flow through context enrichment so sync and
// replay code does not have to repeat run/repo/actor identifiers on
// every log statement.
type LogFields struct {
	RunID     *string // correlation ID for one full sync pass
	Feed      *string // outbound feed name (user_events, repo_events, ...)
	Repo      *string // repository full name being processed
	Actor     *string // platform login being processed
	EventID   *string // platform event id being ingested
	Component string  // component name, e.g. "tracker.service.timeline"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values
// taking precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.RunID != nil {
		result.RunID = new.RunID
	}
	if new.Feed != nil {
		result.Feed = new.Feed
	}
	if new.Repo != nil {
		result.Repo = new.Repo
	}
	if new.Actor != nil {
		result.Actor = new.Actor
	}
	if new.EventID != nil {
		result.EventID = new.EventID
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{Repo: logger.Ptr(name)})
func Ptr[T any](v T) *T {
	return &v
}
