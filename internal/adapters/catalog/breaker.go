package catalog

import (
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/emofy/emofy-api/internal/observability"
)

// newBreaker builds the circuit breaker shared by both catalog clients.
// An open circuit surfaces as an error from the client, which the
// aggregator already degrades to an empty result set, so tripping is
// indistinguishable from an upstream outage to callers.
func newBreaker[T any](name string) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.Logger().Info("catalog circuit state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
}
