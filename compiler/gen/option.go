package gen

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kapok-dev/kapok"
	"github.com/kapok-dev/kapok/compiler/load"
)

// defaultHeader is the header comment carried by every generated unit.
const defaultHeader = "Code generated by kapok. DO NOT EDIT."

// defaultConstructorPrefix names construction functions fakeXxx.
const defaultConstructorPrefix = "fake"

// AnnotationConstructorName is the declaration annotation overriding the
// construction-function name for a single contract.
const AnnotationConstructorName = "constructorName"

// Config configures a generation run.
type Config struct {
	// Header replaces the default generated-code header comment.
	Header string
	// ConstructorPrefix replaces the default "fake" prefix of generated
	// construction functions.
	ConstructorPrefix string
	// Features enabled for this run.
	Features []Feature
	// EmptyContractSeverity decides whether a contract with no members
	// is reported as a warning or an error. Defaults to error.
	EmptyContractSeverity kapok.Severity
	// Registry filters declarations by marker annotation. Defaults to a
	// registry recognizing only load.DefaultMarker.
	Registry *load.Registry
	// Sink receives structured diagnostics. Defaults to kapok.DiscardSink.
	Sink kapok.Sink
	// Writer receives rendered source units. Required.
	Writer kapok.FileWriter
	// Store is the build-scoped generation cache shared across targets.
	// Defaults to a fresh BuildStore.
	Store kapok.Store
	// Logger receives structured progress logs. Defaults to a no-op logger.
	Logger *zap.Logger
	// Workers bounds parallel generation within one target. Defaults to
	// GOMAXPROCS.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the header comment added at the top of each generated
// unit.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithConstructorPrefix sets the naming prefix for generated
// construction functions, e.g. "stub" yields stubKeyValueStore.
func WithConstructorPrefix(prefix string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return fmt.Errorf("kapok: constructor prefix cannot be empty")
		}
		c.ConstructorPrefix = prefix
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := featureByName(name)
			if !ok {
				return fmt.Errorf("kapok: unknown feature %q", name)
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithEmptyContractSeverity decides how contracts with no members are
// reported.
func WithEmptyContractSeverity(s kapok.Severity) Option {
	return func(c *Config) error {
		if s != kapok.SeverityWarning && s != kapok.SeverityError {
			return fmt.Errorf("kapok: empty contracts must be reported as warning or error, not %s", s)
		}
		c.EmptyContractSeverity = s
		return nil
	}
}

// WithMarkers sets the recognized marker annotations, replacing the
// default marker registry.
func WithMarkers(markers ...string) Option {
	return func(c *Config) error {
		c.Registry = load.NewRegistry(markers...)
		return nil
	}
}

// WithRegistry sets the marker registry.
func WithRegistry(r *load.Registry) Option {
	return func(c *Config) error {
		if r == nil {
			return fmt.Errorf("kapok: registry cannot be nil")
		}
		c.Registry = r
		return nil
	}
}

// WithSink sets the diagnostics sink.
func WithSink(s kapok.Sink) Option {
	return func(c *Config) error {
		if s == nil {
			return fmt.Errorf("kapok: sink cannot be nil")
		}
		c.Sink = s
		return nil
	}
}

// WithWriter sets the generated-source writer.
func WithWriter(w kapok.FileWriter) Option {
	return func(c *Config) error {
		if w == nil {
			return fmt.Errorf("kapok: writer cannot be nil")
		}
		c.Writer = w
		return nil
	}
}

// WithStore sets the build-scoped generation cache. Passing the same
// store to every target of a multi-target build is what enables
// cross-target skipping.
func WithStore(s kapok.Store) Option {
	return func(c *Config) error {
		if s == nil {
			return fmt.Errorf("kapok: store cannot be nil")
		}
		c.Store = s
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return fmt.Errorf("kapok: logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers bounds parallel generation within one target.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("kapok: workers must be positive, got %d", n)
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{EmptyContractSeverity: kapok.SeverityError}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config and panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Config) header() string {
	if c.Header != "" {
		return c.Header
	}
	return defaultHeader
}

func (c *Config) constructorPrefix() string {
	if c.ConstructorPrefix != "" {
		return c.ConstructorPrefix
	}
	return defaultConstructorPrefix
}

func (c *Config) featureOn(f Feature) bool {
	for _, enabled := range c.Features {
		if enabled.Name == f.Name {
			return true
		}
	}
	return f.Default
}

func (c *Config) registry() *load.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return load.NewRegistry()
}
