package bootstrap

import (
	"context"
	"log/slog"

	"github.com/kestrelgames/emberrealm/internal/server"
	"github.com/kestrelgames/emberrealm/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	SSEHub *sse.Hub
}

// GracefulShutdown stops the HTTP server first so no new battles start,
// then stops the SSE hub so connected clients drain cleanly. Errors during
// shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShut, "error", err)
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
