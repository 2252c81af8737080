package analytics

import "time"

// Event names.
const (
	EventStartup  = "startup"
	EventToolCall = "tool_call"
)

// Outcome classifies how a tool call ended.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeUnknownTool     Outcome = "unknown_tool"
	OutcomeInvalidArgument Outcome = "invalid_argument"
	OutcomeConnection      Outcome = "connection_error"
	OutcomeNotFound        Outcome = "not_found"
	OutcomeError           Outcome = "error"
)

// TrackEvent is a single usage record.
type TrackEvent struct {
	Event      string
	Timestamp  time.Time
	SessionID  string
	Properties map[string]any
}

// StartupEventInfo describes the running server.
type StartupEventInfo struct {
	Version   string
	Transport string
	ToolCount int
}
