package internal

import (
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
)

// WithTimeout is a middleware that bounds the runtime of an endpoint call. A zero duration disables the bound
func WithTimeout(d time.Duration) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			response, err := next(ctx, request)
			if ctx.Err() == context.DeadlineExceeded {
				return nil, MakeError(
					http.StatusServiceUnavailable,
					ErrCodeTimeout,
					"The request took too long to complete",
				)
			}
			return response, err
		}
	}
}

// LogCalls is a middleware that logs every call to the endpoint together with its duration and outcome
func LogCalls(name string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				logger := ctxhelper.Logger(ctx).WithField("endpoint", name).WithField(log.FldDuration, time.Since(begin))
				if err != nil {
					logger.WithError(err).Info("Endpoint call failed")
					return
				}
				logger.Debug("Endpoint called")
			}(time.Now())
			return next(ctx, request)
		}
	}
}
