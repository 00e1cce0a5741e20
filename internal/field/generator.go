package field

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/VoidMesh/noise/internal/logging"
	"github.com/VoidMesh/noise/internal/noise"
)

// Generator produces fields. Every pass gets a fresh engine that is shared by
// all samples of that pass and by nothing else.
type Generator struct {
	params    Params
	newEngine func() *noise.Engine
	logger    *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithEngineFactory replaces the engine constructor, e.g. to inject a seeded
// random source in tests.
func WithEngineFactory(fn func() *noise.Engine) Option {
	return func(g *Generator) {
		g.newEngine = fn
	}
}

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator validates p and returns a generator for it.
func NewGenerator(p Params, opts ...Option) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		params:    p,
		newEngine: noise.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.WithComponent("generator")
	}
	return g, nil
}

// Params returns the sampling parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Generate runs one complete pass on the calling goroutine.
func (g *Generator) Generate() *Field {
	start := time.Now()
	engine := g.newEngine()
	n := g.params.Samples()
	step := g.params.Step

	f := &Field{
		ID:      uuid.NewString(),
		Params:  g.params,
		Samples: n,
		Values:  make([]float64, n*n),
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f.Values[y*n+x] = engine.SampleAt(float64(x)*step, float64(y)*step)
		}
	}

	f.summarize()
	f.Gradients = engine.Gradients()
	f.GeneratedAt = time.Now().UTC()
	f.Duration = time.Since(start)

	g.logger.Debug("field generated",
		"field_id", f.ID,
		"samples", n,
		"gradients", f.Gradients,
		"min", f.Min,
		"max", f.Max,
		"duration", f.Duration,
	)
	return f
}

// Spawn runs one pass on a new goroutine. The channel receives exactly one
// field and is then closed; the pass completes even if nobody reads it.
func (g *Generator) Spawn() <-chan *Field {
	out := make(chan *Field, 1)
	go func() {
		defer close(out)
		out <- g.Generate()
	}()
	return out
}
