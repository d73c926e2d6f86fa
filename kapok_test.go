package kapok

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "severity(42)", Severity(42).String())
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Severity: SeverityError, Message: "boom"}
	assert.Equal(t, "error: boom", d.String())

	d.Contract = "com.example.Clock"
	assert.Equal(t, "error: com.example.Clock: boom", d.String())

	d.Member = "now"
	assert.Equal(t, "error: com.example.Clock.now: boom", d.String())
}

func TestCollectSink(t *testing.T) {
	sink := &CollectSink{}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Report(Diagnostic{Severity: SeverityWarning, Message: "w"})
		}()
	}
	wg.Wait()
	require.Len(t, sink.Diagnostics(), 16)

	// Diagnostics returns a copy, not the backing slice.
	diags := sink.Diagnostics()
	diags[0].Message = "mutated"
	assert.Equal(t, "w", sink.Diagnostics()[0].Message)
}

func TestSinkFunc(t *testing.T) {
	var got Diagnostic
	Sink(SinkFunc(func(d Diagnostic) { got = d })).Report(Diagnostic{Message: "hello"})
	assert.Equal(t, "hello", got.Message)
}

func TestFileWriterFunc(t *testing.T) {
	files := map[string][]byte{}
	w := FileWriterFunc(func(name string, content []byte) error {
		files[name] = content
		return nil
	})
	require.NoError(t, w.WriteSource("fake_clock.kt", []byte("class FakeClock")))
	assert.Equal(t, []byte("class FakeClock"), files["fake_clock.kt"])
}
