package analytics

//go:generate mockgen -destination=mocks/mock_analytics.go -package=analytics_mocks github.com/mkd-neo4j/mysql-control-bridge/internal/analytics Service
import (
	"time"
)

// Service records usage of the bridge.
type Service interface {
	Disable()
	Enable()
	IsEnabled() bool
	EmitEvent(event TrackEvent)
	NewStartupEvent(startupEventInfo StartupEventInfo) TrackEvent
	NewToolsEvent(tool string, outcome Outcome, duration time.Duration) TrackEvent
}
