package gen

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/kapok-dev/kapok"
	"github.com/kapok-dev/kapok/compiler/load"
)

// memWriter collects generated units in memory.
type memWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemWriter() *memWriter {
	return &memWriter{files: make(map[string][]byte)}
}

func (w *memWriter) WriteSource(name string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[name] = append([]byte(nil), content...)
	return nil
}

func (w *memWriter) get(name string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.files[name]
	return c, ok
}

func (w *memWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}

type failWriter struct{}

func (failWriter) WriteSource(string, []byte) error {
	return errors.New("disk full")
}

func newTestGenerator(t *testing.T, opts ...Option) (*Generator, *memWriter, *kapok.CollectSink) {
	t.Helper()
	w := newMemWriter()
	sink := &kapok.CollectSink{}
	cfg, err := NewConfig(append([]Option{WithWriter(w), WithSink(sink)}, opts...)...)
	require.NoError(t, err)
	g, err := NewGenerator(cfg)
	require.NoError(t, err)
	return g, w, sink
}

func TestGenerator_Golden(t *testing.T) {
	archive, err := txtar.ParseFile("testdata/keyvaluestore.txtar")
	require.NoError(t, err)
	require.Len(t, archive.Files, 2)
	require.Equal(t, "manifest.yaml", archive.Files[0].Name)

	manifest, err := load.ParseManifest(archive.Files[0].Data)
	require.NoError(t, err)

	g, w, sink := newTestGenerator(t)
	res, err := g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: manifest.Declarations,
	})
	require.NoError(t, err)
	require.Empty(t, sink.Diagnostics())
	assert.Equal(t, 1, res.Generated)

	want := archive.Files[1]
	got, ok := w.get(want.Name)
	require.True(t, ok, "expected unit %s", want.Name)
	assert.Equal(t, string(want.Data), string(got))
}

func TestGenerator_CrossTargetCache(t *testing.T) {
	decls := []*load.Declaration{iface("Clock", fun("now", tref("kotlin.Long")))}
	g, w, _ := newTestGenerator(t)

	first, err := g.Generate(context.Background(), &Request{Target: "jvm", Declarations: decls})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Generated)
	assert.Equal(t, 0, first.Skipped)

	second, err := g.Generate(context.Background(), &Request{Target: "js", Declarations: decls})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated, "unchanged contract is not regenerated")
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 1, w.count())
}

func TestGenerator_RegeneratesOnStructuralChange(t *testing.T) {
	g, _, _ := newTestGenerator(t)

	_, err := g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{iface("Clock", fun("now", tref("kotlin.Long")))},
	})
	require.NoError(t, err)

	// Same identity, different structure: the signature differs and the
	// cache entry no longer matches.
	res, err := g.Generate(context.Background(), &Request{
		Target:       "js",
		Declarations: []*load.Declaration{iface("Clock", fun("now", tref("kotlin.Int")))},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, 0, res.Skipped)
}

func TestGenerator_SharedStoreAcrossGenerators(t *testing.T) {
	decls := []*load.Declaration{iface("Clock", fun("now", tref("kotlin.Long")))}
	store := NewBuildStore()

	g1, _, _ := newTestGenerator(t, WithStore(store))
	first, err := g1.Generate(context.Background(), &Request{Target: "jvm", Declarations: decls})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Generated)

	g2, w2, _ := newTestGenerator(t, WithStore(store))
	second, err := g2.Generate(context.Background(), &Request{Target: "native", Declarations: decls})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Skipped)
	assert.Equal(t, 0, w2.count())
}

func TestGenerator_UnmarkedDeclarationsIgnored(t *testing.T) {
	unmarked := iface("Quiet", fun("call", nil))
	unmarked.Markers = nil
	g, w, sink := newTestGenerator(t)

	res, err := g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{unmarked},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Generated)
	assert.Zero(t, res.Failed)
	assert.Zero(t, w.count())
	assert.Empty(t, sink.Diagnostics())
}

func TestGenerator_ShapeDiagnostic(t *testing.T) {
	bad := iface("Singleton", fun("call", nil))
	bad.Kind = load.KindObject
	g, w, sink := newTestGenerator(t)

	res, err := g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{bad, iface("Good", fun("call", nil))},
	})
	require.NoError(t, err, "contract-local failures never abort the run")
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, 1, w.count())

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, kapok.SeverityError, diags[0].Severity)
	assert.Equal(t, "com.example.Singleton", diags[0].Contract)
	require.NotEmpty(t, diags[0].Fixes)
}

func TestGenerator_EmptyContractSeverity(t *testing.T) {
	t.Run("error by default", func(t *testing.T) {
		g, _, sink := newTestGenerator(t)
		res, err := g.Generate(context.Background(), &Request{
			Target:       "jvm",
			Declarations: []*load.Declaration{iface("Marker")},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Failed)
		diags := sink.Diagnostics()
		require.Len(t, diags, 1)
		assert.Equal(t, kapok.SeverityError, diags[0].Severity)
	})

	t.Run("downgraded to warning", func(t *testing.T) {
		g, _, sink := newTestGenerator(t, WithEmptyContractSeverity(kapok.SeverityWarning))
		res, err := g.Generate(context.Background(), &Request{
			Target:       "jvm",
			Declarations: []*load.Declaration{iface("Marker")},
		})
		require.NoError(t, err)
		assert.Zero(t, res.Failed)
		assert.Equal(t, 1, res.Skipped)
		diags := sink.Diagnostics()
		require.Len(t, diags, 1)
		assert.Equal(t, kapok.SeverityWarning, diags[0].Severity)
	})
}

func TestGenerator_MissingDependency(t *testing.T) {
	broken := iface("Car", fun("drive", nil))
	broken.Uses = []string{"com.example.Engine"}
	g, w, sink := newTestGenerator(t)

	res, err := g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{broken, iface("Good", fun("call", nil))},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Generated)
	_, ok := w.get("fake_car.kt")
	assert.False(t, ok, "contracts with broken references are skipped")

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "missing dependency")
}

func TestGenerator_CircularDependencyFailsEveryMember(t *testing.T) {
	// One cycle diagnostic covers the whole chain, but every contract on
	// the cycle is excluded from generation and counted as failed.
	a := iface("A", fun("a", nil))
	a.Uses = []string{"com.example.B"}
	b := iface("B", fun("b", nil))
	b.Uses = []string{"com.example.C"}
	c := iface("C", fun("c", nil))
	c.Uses = []string{"com.example.A"}
	g, w, sink := newTestGenerator(t)

	res, err := g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{a, b, c, iface("Good", fun("call", nil))},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, 1, w.count())

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "circular dependency")
}

func TestGenerator_WriterFailureAborts(t *testing.T) {
	store := NewBuildStore()
	cfg, err := NewConfig(WithWriter(failWriter{}), WithStore(store))
	require.NoError(t, err)
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{iface("Clock", fun("now", tref("kotlin.Long")))},
	})
	require.ErrorContains(t, err, "disk full")

	_, ok := store.Lookup("com.example.Clock")
	assert.False(t, ok, "a failed write never commits to the cache")
}

func TestGenerator_ConcurrentTargets(t *testing.T) {
	decls := []*load.Declaration{
		iface("A", fun("a", nil)),
		iface("B", fun("b", nil)),
		iface("C", fun("c", nil)),
	}
	g, w, sink := newTestGenerator(t, WithWorkers(4))

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := g.Generate(context.Background(), &Request{Target: "t", Declarations: decls})
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	generated := 0
	for _, res := range results {
		generated += res.Generated
		assert.Equal(t, 3, res.Generated+res.Skipped)
	}
	assert.Equal(t, 3, generated, "each contract is generated exactly once across targets")
	assert.Equal(t, 3, w.count())
	assert.Empty(t, sink.Diagnostics())
}

func TestGenerator_ContextCancellation(t *testing.T) {
	g, _, _ := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, &Request{
		Target:       "jvm",
		Declarations: []*load.Declaration{iface("Clock", fun("now", tref("kotlin.Long")))},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewGenerator_Validation(t *testing.T) {
	_, err := NewGenerator(nil)
	require.Error(t, err)

	_, err = NewGenerator(MustNewConfig())
	require.ErrorContains(t, err, "no writer")
}

func TestGenerator_RunID(t *testing.T) {
	g1, _, _ := newTestGenerator(t)
	g2, _, _ := newTestGenerator(t)
	assert.NotEmpty(t, g1.RunID())
	assert.NotEqual(t, g1.RunID(), g2.RunID())
}
