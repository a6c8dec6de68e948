package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"courtside/a2a"
	"courtside/discovery"
	"courtside/dispatch"
	"courtside/hostapi"
	"courtside/registry"
	"courtside/schedule"
	"courtside/toolset"
	"courtside/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so deferred cleanup always executes.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Schedule & Participant Discovery
	// The demo window starts tomorrow so bookings always target future dates.
	sched := schedule.NewDemo(time.Now().AddDate(0, 0, 1))
	reg := registry.New()
	discoverer := discovery.NewHTTP(log, config.DiscoveryTimeout)
	discoverer.Run(ctx, config.Endpoints(), reg)

	// 4. Tool Boundary
	dispatcher := dispatch.New(log, reg)
	tools := toolset.New(log, dispatcher, sched)

	// 5. Supervised Background Workers
	sup := workers.NewSupervisor(log)
	resolver := a2a.NewCardResolver(&http.Client{Timeout: config.DiscoveryTimeout})
	heartbeat := workers.NewHeartbeatWorker(log, reg, resolver, config.HeartbeatInterval)
	supDone := make(chan struct{})
	go func() {
		sup.Add(heartbeat).Run(ctx)
		close(supDone)
	}()

	// 6. HTTP Server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:    address,
		Handler: hostapi.New(log, tools, reg).Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting host API server", "address", address, "agents", reg.Names())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("host API server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown was not clean", "error", err)
	}
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
