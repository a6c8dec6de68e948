package main

import (
	"strings"
	"time"
)

// defaultAgentURLs matches the ports the demo participants bind to.
const defaultAgentURLs = "http://localhost:10004,http://localhost:10005"

type Config struct {
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	AgentURLs         string        `env:"AGENT_URLS"`
	DiscoveryTimeout  time.Duration `env:"DISCOVERY_TIMEOUT,default=10s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
}

// Endpoints splits the comma-separated AGENT_URLS value. The default cannot
// live in the struct tag because go-env treats commas as option separators.
func (c Config) Endpoints() []string {
	urls := c.AgentURLs
	if strings.TrimSpace(urls) == "" {
		urls = defaultAgentURLs
	}
	return strings.Split(urls, ",")
}
