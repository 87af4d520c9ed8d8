package domain

import (
	"encoding/json"
	"strings"
)

// UpdateKind is the kind of change announced on the live feed.
type UpdateKind uint8

const (
	// UpdateUnknown is any message type the feed does not dispatch.
	UpdateUnknown UpdateKind = iota
	// UpdateCreated announces a new record.
	UpdateCreated
	// UpdateUpdated announces a modified record.
	UpdateUpdated
	// UpdateDeleted announces a removed record.
	UpdateDeleted
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateCreated:
		return "created"
	case UpdateUpdated:
		return "updated"
	case UpdateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// LiveMessage is one frame received on the live feed.
type LiveMessage struct {
	Type     string          `json:"type"`
	Resource string          `json:"resource,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Kind classifies the message type. Both "created" and prefixed
// forms such as "CATEGORY_CREATED" are accepted.
func (m LiveMessage) Kind() UpdateKind {
	t := strings.ToLower(m.Type)
	switch {
	case strings.HasSuffix(t, "created"):
		return UpdateCreated
	case strings.HasSuffix(t, "updated"):
		return UpdateUpdated
	case strings.HasSuffix(t, "deleted"):
		return UpdateDeleted
	default:
		return UpdateUnknown
	}
}

// Target returns the resource the message is about. An explicit resource field
// wins; otherwise the prefix of the type ("CATEGORY_CREATED" -> "category") is used.
func (m LiveMessage) Target() string {
	if m.Resource != "" {
		return strings.ToLower(m.Resource)
	}
	t := strings.ToLower(m.Type)
	for _, sep := range []string{"_", ":", "."} {
		if i := strings.LastIndex(t, sep); i > 0 {
			return t[:i]
		}
	}
	return ""
}

// LiveUpdate is a decoded live feed message handed to handlers.
type LiveUpdate struct {
	Kind     UpdateKind
	Resource string
	Data     json.RawMessage
}
