package bot

import "time"

const (
	defaultWorkers        = 16
	defaultHandlerTimeout = time.Minute
)

type options struct {
	workers        int
	handlerTimeout time.Duration
}

func defaultOptions() options {
	return options{
		workers:        defaultWorkers,
		handlerTimeout: defaultHandlerTimeout,
	}
}

// Option configures a Dispatcher.
type Option func(*options)

// WithWorkers bounds how many updates are handled at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithHandlerTimeout bounds the time spent on one update. Zero disables the bound.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.handlerTimeout = d
		}
	}
}
