package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chameleon-be/internal/bootstrap"
	"chameleon-be/internal/config"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/server"
	"chameleon-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(sysLogger)

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg, sysLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Start Background Services
	go container.WebSocketHub.Run(ctx)
	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("Main", "Consumer service failed to start", map[string]interface{}{"error": err.Error()})
	}

	// 5. Run Server
	srv := server.New(cfg, container)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		if err != nil {
			sysLogger.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		sysLogger.Info("Main", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			sysLogger.Warn("Main", "Server shutdown error", map[string]interface{}{"error": err.Error()})
		}
	}

	container.Close()
	tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracer(tctx); err != nil {
		sysLogger.Warn("Main", "Tracer shutdown error", map[string]interface{}{"error": err.Error()})
	}
}
