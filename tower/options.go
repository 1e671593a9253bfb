package tower

import "github.com/domino14/gameengines/persist"

type options struct {
	strategy   persist.Strategy
	permissive bool
}

// An Option configures a State at construction. Options carry over to
// every successor and copy of that state.
type Option func(*options)

// WithStrategy sets the save/load strategy. The default is persist.Default.
func WithStrategy(s persist.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithPermissivePlay makes Play accept any in-bounds move, legal or not,
// like PlayUnchecked does.
func WithPermissivePlay(permissive bool) Option {
	return func(o *options) {
		o.permissive = permissive
	}
}

func buildOptions(opts []Option) options {
	o := options{strategy: persist.Default}
	for _, opt := range opts {
		opt(&o)
	}
	if o.strategy == nil {
		o.strategy = persist.Default
	}
	return o
}
