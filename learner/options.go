package learner

import "go.uber.org/zap"

// Option customizes a LearnRegular/LearnOneCounter run: a function
// mutating a private config, applied in order, later options override
// earlier ones.
type Option func(*options)

type options struct {
	logger        *zap.Logger
	maxIterations int
	prune         bool
}

// WithLogger injects a *zap.Logger for per-iteration progress. A nil
// logger is a no-op (the default is zap.NewNop()).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxIterations bounds the outer loop as a safety valve against a
// misbehaving teacher; 0 (the default) means unbounded.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// WithPrune runs hypothesis.Automaton.Prune() on the final result before
// returning it. Off by default: the learners promise no minimality
// beyond what closure/consistency give, so pruning is an explicit
// opt-in rather than an automatic step.
func WithPrune() Option {
	return func(o *options) { o.prune = true }
}

func newOptions(opts ...Option) *options {
	cfg := &options{
		logger:        zap.NewNop(),
		maxIterations: 0,
		prune:         false,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
