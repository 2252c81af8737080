package analytics

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mysql_bridge"

// Analytics keeps tool usage as prometheus metrics and structured log
// events. Nothing leaves the process; the metrics are exposed only when the
// HTTP transport mounts the registry.
type Analytics struct {
	enabled   atomic.Bool
	sessionID string
	now       func() time.Time

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	info         *prometheus.GaugeVec
}

// New creates an enabled service and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Analytics, error) {
	a := &Analytics{
		sessionID: uuid.NewString(),
		now:       time.Now,
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool calls by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Duration of tool calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "info",
				Help:      "Static information about the running server",
			},
			[]string{"version", "transport"},
		),
	}

	for _, c := range []prometheus.Collector{a.toolCalls, a.toolDuration, a.info} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	a.enabled.Store(true)
	return a, nil
}

func (a *Analytics) Disable() {
	a.enabled.Store(false)
	slog.Info("telemetry disabled")
}

func (a *Analytics) Enable() {
	a.enabled.Store(true)
}

func (a *Analytics) IsEnabled() bool {
	return a.enabled.Load()
}

// SessionID identifies this process in emitted events.
func (a *Analytics) SessionID() string {
	return a.sessionID
}

// EmitEvent records the event. Disabled services drop it.
func (a *Analytics) EmitEvent(event TrackEvent) {
	if !a.IsEnabled() {
		return
	}

	switch event.Event {
	case EventToolCall:
		tool, _ := event.Properties["tool"].(string)
		outcome, _ := event.Properties["outcome"].(Outcome)
		a.toolCalls.WithLabelValues(tool, string(outcome)).Inc()
		if d, ok := event.Properties["duration"].(time.Duration); ok {
			a.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
		}
	case EventStartup:
		version, _ := event.Properties["version"].(string)
		transport, _ := event.Properties["transport"].(string)
		a.info.WithLabelValues(version, transport).Set(1)
	}

	attrs := make([]any, 0, 2*len(event.Properties)+4)
	attrs = append(attrs, "event", event.Event, "session", event.SessionID)
	for k, v := range event.Properties {
		attrs = append(attrs, k, v)
	}
	slog.Debug("analytics event", attrs...)
}

func (a *Analytics) NewStartupEvent(info StartupEventInfo) TrackEvent {
	return a.newEvent(EventStartup, map[string]any{
		"version":    info.Version,
		"transport":  info.Transport,
		"tool_count": info.ToolCount,
	})
}

func (a *Analytics) NewToolsEvent(tool string, outcome Outcome, duration time.Duration) TrackEvent {
	return a.newEvent(EventToolCall, map[string]any{
		"tool":     tool,
		"outcome":  outcome,
		"duration": duration,
	})
}

func (a *Analytics) newEvent(name string, props map[string]any) TrackEvent {
	return TrackEvent{
		Event:      name,
		Timestamp:  a.now(),
		SessionID:  a.sessionID,
		Properties: props,
	}
}
