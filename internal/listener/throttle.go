package listener

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle wraps a Listener so it is invoked at most eventsPerSecond times
// per second, blocking the caller (the matcher's own goroutine) until the
// limiter admits the call. Ported from the token-bucket wrapper in
// jacoelho/rq's internal/ratelimit/ratelimit.go, repurposed here to protect
// a slow downstream sink from a dense match stream instead of throttling
// outbound HTTP requests.
//
// Because SurfingContext calls listeners synchronously on the parser's own
// goroutine (spec.md §5), throttling a listener throttles parsing itself —
// this is intentional backpressure, not a background worker.
func Throttle(next Listener, eventsPerSecond float64) Listener {
	if eventsPerSecond <= 0 {
		return next
	}
	limiter := rate.NewLimiter(rate.Limit(eventsPerSecond), 1)
	return Func(func(value any, ctx ParsingContext) error {
		if err := limiter.Wait(context.Background()); err != nil {
			return err
		}
		return next.OnValue(value, ctx)
	})
}
