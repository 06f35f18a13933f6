package preprocessing

import "github.com/YuminosukeSato/cancelprep/pkg/log"

// Option configures a Balancer or FeatureEncoder.
type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger sets the logger used for progress records. The default is the
// component logger from log.GetLoggerWithName.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.GetLoggerWithName(component)
	}
	return o
}
