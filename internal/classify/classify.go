// Package classify maps heterogeneous platform event shapes to
// canonical categories and resolves their display links.
package classify

import (
	"forgepulse.app/tracker/internal/model"
)

// Override may replace the table-derived category given the raw
// (type, action) pair. Returning the input category keeps it.
type Override func(category model.Category, eventType, action string) model.Category

// Classifier assigns a canonical category to a (type, action) pair.
// Classification is total: every unmatched input falls back to
// model.CategoryDefault, and it never fails.
type Classifier struct {
	override Override
}

// NewClassifier builds a classifier with an optional override hook.
// A nil override is a no-op.
func NewClassifier(override Override) *Classifier {
	if override == nil {
		override = func(category model.Category, _, _ string) model.Category { return category }
	}
	return &Classifier{override: override}
}

func (c *Classifier) Classify(eventType, action string) model.Category {
	return c.override(classify(eventType, action), eventType, action)
}

func classify(eventType, action string) model.Category {
	switch eventType {
	case "IssuesEvent":
		switch action {
		case "opened":
			return model.CategoryIssueOpened
		case "closed":
			return model.CategoryIssueClosed
		default:
			return model.CategoryIssueTouched
		}
	case "PullRequestEvent":
		switch action {
		case "opened":
			return model.CategoryPROpened
		case "closed":
			return model.CategoryPRClosed
		default:
			return model.CategoryPRTouched
		}
	case "IssueCommentEvent", "CommitCommentEvent":
		return model.CategoryComment
	case "PullRequestReviewCommentEvent":
		return model.CategoryReviewedPR
	case "PushEvent":
		return model.CategoryPushed
	case "CreateEvent":
		return model.CategoryCreated
	case "ReleaseEvent":
		return model.CategoryReleased
	case "DeleteEvent":
		return model.CategoryDeleted
	case "GollumEvent":
		return model.CategoryWikiEdit
	case "ForkEvent":
		return model.CategoryForked
	default:
		return model.CategoryDefault
	}
}
