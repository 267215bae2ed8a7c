package bootstrap

import "time"

// Event system defaults applied when the config leaves them unset
const (
	EventDefaultMaxRetries = 5
	EventDefaultRetryDelay = 2 * time.Second

	DirPermission = 0755
)

// Log message constants
const (
	LogMsgEventSystemInitialized = "Event system initialized"
	LogMsgSSEHubStarted          = "SSE hub started"

	LogMsgShuttingDownServer = "Shutting down server"
	LogMsgServerForcedShut   = "Server forced to shutdown"
	LogMsgServerStopped      = "Server stopped"

	LogMsgFailedCreateDeadLetterDir = "failed to create dead letter directory"
)
