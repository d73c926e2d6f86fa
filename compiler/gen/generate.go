package gen

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kapok-dev/kapok"
	"github.com/kapok-dev/kapok/compiler/load"
)

// Generator orchestrates the pipeline for one build invocation: analyze,
// classify, probe the cache, build the code model, render, hand the
// source to the writer and commit the signature. It is called once per
// target; the injected store is what lets later targets skip work the
// first target already paid for.
type Generator struct {
	cfg   *Config
	log   *zap.Logger
	store kapok.Store
	runID string

	// locks serializes the read-check-commit sequence per contract
	// identity, so two targets never both decide to regenerate the same
	// unchanged contract.
	locks sync.Map // string -> *sync.Mutex
}

// Request is one target's generation input.
type Request struct {
	// Target names the platform compilation this request belongs to.
	Target string
	// Declarations holds the raw declarations of the shared source set.
	Declarations []*load.Declaration
}

// Result summarizes one target's run.
type Result struct {
	Target string
	// Generated counts contracts rendered and committed.
	Generated int
	// Skipped counts cache hits: unchanged contracts reusing prior output.
	Skipped int
	// Failed counts contracts skipped because of reported diagnostics.
	Failed int
}

// NewGenerator creates a generator for the given configuration.
// The configuration must carry a writer; everything else has defaults.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kapok: nil config")
	}
	if cfg.Writer == nil {
		return nil, fmt.Errorf("kapok: config has no writer; use WithWriter")
	}
	if cfg.Sink == nil {
		cfg.Sink = kapok.DiscardSink
	}
	if cfg.Store == nil {
		cfg.Store = NewBuildStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	runID := uuid.NewString()
	return &Generator{
		cfg:   cfg,
		log:   cfg.Logger.With(zap.String("run", runID)),
		store: cfg.Store,
		runID: runID,
	}, nil
}

// RunID identifies this generator's build invocation in logs.
func (g *Generator) RunID() string { return g.runID }

// Generate runs the pipeline for one target. Validation failures are
// local to their contract and surface as diagnostics; only writer
// failures abort the run.
func (g *Generator) Generate(ctx context.Context, req *Request) (*Result, error) {
	log := g.log.With(zap.String("target", req.Target))
	res := &Result{Target: req.Target}
	var mu sync.Mutex

	decls := g.cfg.registry().Select(req.Declarations)
	log.Debug("analyzing declarations",
		zap.Int("marked", len(decls)),
		zap.Int("total", len(req.Declarations)))

	contracts := make([]*Contract, 0, len(decls))
	for _, d := range decls {
		c, err := NewContract(d)
		if err != nil {
			g.reportAnalysis(err, res, &mu)
			continue
		}
		c.Shape = Classify(c)
		contracts = append(contracts, c)
	}

	wired, depErrs := ResolveDependencies(contracts)
	for _, err := range depErrs {
		var depErr *DependencyError
		if errors.As(err, &depErr) {
			g.cfg.Sink.Report(depErr.Diagnostic())
		}
	}
	// One cycle diagnostic covers every contract on the cycle, so failures
	// are counted by exclusion, not by error.
	for _, c := range contracts {
		if _, ok := wired[c.QualifiedName()]; !ok {
			mu.Lock()
			res.Failed++
			mu.Unlock()
		}
	}

	resolver := NewResolver()
	if g.cfg.featureOn(FeatureOverlapWarning) {
		resolver.WithOverlapWarnings(g.cfg.Sink)
	}
	builder := NewBuilder(g.cfg, resolver).WithWired(wired)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for _, c := range contracts {
		if _, ok := wired[c.QualifiedName()]; !ok {
			// Broken auto-wire reference, already reported.
			continue
		}
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.generateOne(log, builder, c, res, &mu)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return res, err
	}
	log.Info("target generated",
		zap.Int("generated", res.Generated),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed))
	return res, nil
}

// generateOne runs analyze-build-render-commit for a single contract.
// The per-identity lock makes the cache's read-check-commit sequence
// atomic across concurrently scheduled targets.
func (g *Generator) generateOne(log *zap.Logger, builder *Builder, c *Contract, res *Result, mu *sync.Mutex) error {
	identity := c.QualifiedName()
	lock := g.identityLock(identity)
	lock.Lock()
	defer lock.Unlock()

	sig := Signature(c)
	if prev, ok := g.store.Lookup(identity); ok && prev == sig {
		log.Debug("signature unchanged, reusing prior output",
			zap.String("contract", identity))
		mu.Lock()
		res.Skipped++
		mu.Unlock()
		return nil
	}

	file := builder.Build(c)
	src := Render(file)
	if err := g.cfg.Writer.WriteSource(outputName(c), src); err != nil {
		return fmt.Errorf("kapok: write %s: %w", outputName(c), err)
	}
	// Commit only after the render and write succeeded, so a failed
	// generation never poisons the cache for the next target.
	g.store.Commit(identity, sig)
	log.Debug("contract generated",
		zap.String("contract", identity),
		zap.String("shape", c.Shape.String()),
		zap.Int("bytes", len(src)))
	mu.Lock()
	res.Generated++
	mu.Unlock()
	return nil
}

// reportAnalysis converts an analysis failure to a diagnostic and counts it.
func (g *Generator) reportAnalysis(err error, res *Result, mu *sync.Mutex) {
	var (
		shapeErr *ShapeError
		emptyErr *EmptyContractError
		sigErr   *SignatureError
	)
	severity := kapok.SeverityError
	switch {
	case errors.As(err, &shapeErr):
		g.cfg.Sink.Report(shapeErr.Diagnostic())
	case errors.As(err, &emptyErr):
		severity = g.cfg.EmptyContractSeverity
		g.cfg.Sink.Report(emptyErr.Diagnostic(severity))
	case errors.As(err, &sigErr):
		g.cfg.Sink.Report(sigErr.Diagnostic())
	default:
		g.cfg.Sink.Report(kapok.Diagnostic{
			Severity: kapok.SeverityError,
			Message:  err.Error(),
		})
	}
	mu.Lock()
	if severity == kapok.SeverityError {
		res.Failed++
	} else {
		res.Skipped++
	}
	mu.Unlock()
}

func (g *Generator) identityLock(identity string) *sync.Mutex {
	actual, _ := g.locks.LoadOrStore(identity, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
