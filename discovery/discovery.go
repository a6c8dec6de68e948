// Package discovery resolves configured participant endpoints into live
// registry connections at host startup.
package discovery

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"courtside/a2a"
	"courtside/contract"
	"courtside/registry"
)

// DefaultTimeout bounds each descriptor fetch.
const DefaultTimeout = 10 * time.Second

// Outcome is the explicit per-endpoint result: either a resolved card or
// the failure cause. Failures are never surfaced past discovery; the
// participant is simply absent from the registry.
type Outcome struct {
	Endpoint string
	Card     a2a.AgentCard
	Err      error
}

func (o Outcome) Resolved() bool { return o.Err == nil }

// Report aggregates all outcomes of one discovery run.
type Report struct {
	Outcomes []Outcome
}

func (r Report) Resolved() int {
	return lo.CountBy(r.Outcomes, Outcome.Resolved)
}

func (r Report) Failed() int {
	return len(r.Outcomes) - r.Resolved()
}

// Discoverer populates a registry from a candidate endpoint list.
// A single unreachable participant never aborts discovery of the others,
// and an empty result leaves the host usable for local booking.
type Discoverer struct {
	log       *slog.Logger
	resolver  contract.CardResolver
	clientFor func(endpoint string) contract.MessageSender
	timeout   time.Duration
}

// NewHTTP builds a discoverer that talks plain HTTP, sharing one client
// across card fetches and the per-participant message clients.
func NewHTTP(log *slog.Logger, timeout time.Duration) *Discoverer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	return New(log,
		a2a.NewCardResolver(httpClient),
		func(endpoint string) contract.MessageSender {
			return a2a.NewClient(httpClient, endpoint)
		},
		timeout,
	)
}

func New(log *slog.Logger, resolver contract.CardResolver,
	clientFor func(endpoint string) contract.MessageSender, timeout time.Duration) *Discoverer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Discoverer{log: log, resolver: resolver, clientFor: clientFor, timeout: timeout}
}

// Run resolves every candidate endpoint in order and registers the
// successes under their declared card names. The full report is logged
// once; callers only ever see registered connections.
func (d *Discoverer) Run(ctx context.Context, endpoints []string, reg *registry.Registry) Report {
	candidates := Normalize(endpoints)
	if len(candidates) == 0 {
		d.log.Warn("No participant endpoints configured, starting with an empty registry")
		return Report{}
	}

	report := Report{Outcomes: make([]Outcome, 0, len(candidates))}
	for _, endpoint := range candidates {
		outcome := d.resolve(ctx, endpoint)
		report.Outcomes = append(report.Outcomes, outcome)
		if !outcome.Resolved() {
			d.log.Warn("Failed to resolve participant", "endpoint", endpoint, "error", outcome.Err)
			continue
		}

		replaced := reg.Add(&registry.Connection{
			Card:     outcome.Card,
			Endpoint: endpoint,
			Client:   d.clientFor(endpoint),
		})
		if replaced {
			d.log.Warn("Participant name already registered, keeping the later endpoint",
				"name", outcome.Card.Name, "endpoint", endpoint)
		}
	}

	d.log.Info("Discovery finished",
		"candidates", len(candidates),
		"resolved", report.Resolved(),
		"failed", report.Failed(),
		"agents", reg.Names(),
	)
	if reg.Len() == 0 {
		d.log.Warn("No participant agents connected, remote dispatch will fail until some are reachable")
	}
	return report
}

func (d *Discoverer) resolve(parent context.Context, endpoint string) Outcome {
	ctx, cancel := context.WithTimeout(parent, d.timeout)
	defer cancel()

	card, err := d.resolver.Resolve(ctx, endpoint)
	return Outcome{Endpoint: endpoint, Card: card, Err: err}
}

// Normalize strips blanks and trailing slashes and drops duplicates while
// preserving the configured order.
func Normalize(endpoints []string) []string {
	cleaned := lo.FilterMap(endpoints, func(endpoint string, _ int) (string, bool) {
		trimmed := strings.TrimRight(strings.TrimSpace(endpoint), "/")
		return trimmed, trimmed != ""
	})
	return lo.Uniq(cleaned)
}
