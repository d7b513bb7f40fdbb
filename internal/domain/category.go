package domain

import (
	"strings"

	"go.uber.org/zap"

	"crm-relay.io/relay/internal/pkg/logger"
)

// ActivityCategory is the closed set of activity kinds the backend accepts.
type ActivityCategory string

const (
	CategoryEmail    ActivityCategory = "email"
	CategoryCall     ActivityCategory = "call"
	CategoryMeeting  ActivityCategory = "meeting"
	CategoryTask     ActivityCategory = "task"
	CategoryNote     ActivityCategory = "note"
	CategoryReminder ActivityCategory = "reminder"
)

// NormalizeCategory maps free-text category input to the closed set.
// Unrecognized values fall back to CategoryNote; the fallback is logged so
// silent data loss stays observable upstream.
func NormalizeCategory(raw string) ActivityCategory {
	switch c := ActivityCategory(strings.ToLower(strings.TrimSpace(raw))); c {
	case CategoryEmail, CategoryCall, CategoryMeeting, CategoryTask, CategoryNote, CategoryReminder:
		return c
	default:
		logger.Warn("unrecognized activity category, defaulting to note",
			zap.String("category", raw),
		)
		return CategoryNote
	}
}
