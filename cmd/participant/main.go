package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"courtside/participant"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

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

	// 3. Calendar & Agent Card
	// Demo availability starts tomorrow, the same window the host books in.
	owner := ownerName(config.Name)
	calendar := participant.NewCalendar(owner, participant.DemoEntries(time.Now().AddDate(0, 0, 1)))
	responder := participant.NewCalendarResponder(calendar)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	card := participant.NewCard(config.Name, config.Description, "http://"+address)

	// 4. HTTP Server
	server := &http.Server{
		Addr:    address,
		Handler: participant.NewServer(log, card, responder).Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting participant agent", "name", config.Name, "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("participant server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown was not clean", "error", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}

// ownerName derives the person's name from an agent name like "Jeff's Agent".
func ownerName(agentName string) string {
	owner, _, found := strings.Cut(agentName, "'s ")
	if !found || owner == "" {
		return agentName
	}
	return owner
}
