package wrap

// Option customizes a wrap.* call. Zero or more may be passed; later
// options override earlier ones for the same field.
type Option func(*config)

type config struct {
	label     string
	capacity  int
	hasCapOpt bool
}

// Label sets the endpoint's display label, overriding the source-derived
// one.
func Label(s string) Option {
	return func(c *config) { c.label = s }
}

// Capacity asserts the declared capacity of the wrapped channel. wrap.Channel
// panics at the call site if this does not match the real channel's actual
// capacity as reported by cap().
func Capacity(n int) Option {
	return func(c *config) { c.capacity = n; c.hasCapOpt = true }
}

func applyOptions(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
