package config

import (
	"log"
	"time"

	"github.com/sony/gobreaker"
)

const (
	BreakerPostgres      = "PostgreSQL"
	BreakerRedisSession  = "Redis-Session"
	BreakerRabbitMQ      = "RabbitMQ-Publisher"
	BreakerRelayPostgres = "Relay-PostgreSQL"
)

// NewCircuitBreaker opens after three consecutive failures. The open timeout
// depends on the dependency named.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     breakerTimeout(name),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CRITICAL] Circuit Breaker %s: %s -> %s", name, from, to)
		},
	})
}

func breakerTimeout(name string) time.Duration {
	switch name {
	case BreakerRedisSession:
		// matches the readiness probe timeout
		return time.Second * 5
	case BreakerPostgres, BreakerRelayPostgres:
		return time.Second * 10
	default:
		return time.Second * 30
	}
}
