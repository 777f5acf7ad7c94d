package profile

// Profiler describes one profiling session.
type Profiler struct {
	// Mode selects the profile kind; see [Modes]. Empty disables profiling.
	Mode string
	// Dir is the output directory. Empty uses a temporary directory.
	Dir string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// New returns a profiler with opts applied in order.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profile kind.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithDir sets the output directory.
func WithDir(dir string) Option {
	return func(p Profiler) Profiler {
		p.Dir = dir

		return p
	}
}

// WithQuiet sets whether the profiler logs its own start and stop.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Start begins profiling. It returns a no-op [Stopper] if Mode is empty or
// unknown, or if the binary was built without the pprof tag. Stop is always
// safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
