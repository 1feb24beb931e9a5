package realtime

import "github.com/google/uuid"

// Event names.
const (
	EventNewFlag          = "moderation:new-flag"
	EventModerationAction = "moderation:action"
)

// NewFlagEvent notifies moderators that a flag was created, whether by a
// user or by the system.
type NewFlagEvent struct {
	FlagID      uuid.UUID `json:"flag_id"`
	PostID      uuid.UUID `json:"post_id"`
	Reason      string    `json:"reason"`
	FlaggedBy   string    `json:"flagged_by"`
	PostAuthor  string    `json:"post_author"`
	PostContent string    `json:"post_content"`
}

// ModerationActionEvent notifies a content author that a moderator acted
// on a flag against their post.
type ModerationActionEvent struct {
	Action    string    `json:"action"`
	PostID    uuid.UUID `json:"post_id"`
	Reason    string    `json:"reason,omitempty"`
	Moderator string    `json:"moderator"`
}

// Preview truncates post content for notification payloads.
func Preview(content string) string {
	const max = 100
	if len(content) <= max {
		return content + "..."
	}
	return content[:max] + "..."
}
