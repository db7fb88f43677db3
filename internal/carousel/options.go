package carousel

import "time"

// DefaultInterval is the auto-advance delay used when none is configured.
const DefaultInterval = 4000 * time.Millisecond

type options struct {
	interval time.Duration
	controls bool
}

// Option configures a Carousel at construction.
type Option func(*options)

// WithInterval sets the auto-advance delay. Zero or negative disables
// auto-advance.
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithControls toggles the previous/next buttons and position dots.
func WithControls(show bool) Option {
	return func(o *options) { o.controls = show }
}
