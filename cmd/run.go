package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
)

// Run builds the services of role, serves them until ctx is cancelled and
// then shuts them down.
func Run(ctx context.Context, cfg Config, role Role, logger *slog.Logger) error {
	root, err := NewCompositionRoot(cfg, logger)
	if err != nil {
		return err
	}
	defer root.Close()

	roles := role.Expand()
	services := make([]*Service, 0, len(roles))
	for _, r := range roles {
		svc, buildErr := root.Build(ctx, r)
		if buildErr != nil {
			stopAll(logger, services)
			return buildErr
		}
		services = append(services, svc)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2*len(services))
	var wg sync.WaitGroup
	for _, svc := range services {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port(svc.Role, len(roles) == 1))

		wg.Add(2)
		go func() {
			defer wg.Done()
			if startErr := svc.Channel.Start(runCtx); startErr != nil {
				errCh <- fmt.Errorf("%s consumer: %w", svc.Role, startErr)
			}
		}()
		go func() {
			defer wg.Done()
			logger.InfoContext(ctx, "service listening", "service", svc.Role.ServiceID(), "addr", addr)
			if startErr := svc.HTTP.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s http: %w", svc.Role, startErr)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	for _, svc := range services {
		if shutdownErr := svc.HTTP.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.ErrorContext(shutdownCtx, "http shutdown failed", "service", svc.Role.ServiceID(), "error", shutdownErr)
		}
	}
	wg.Wait()
	stopAll(logger, services)

	logger.Info("shutdown complete")
	return runErr
}

func stopAll(logger *slog.Logger, services []*Service) {
	for _, svc := range services {
		if err := svc.Stop(); err != nil {
			logger.Error("service stop failed", "service", svc.Role.ServiceID(), "error", err)
		}
	}
}
