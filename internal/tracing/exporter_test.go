package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, scanner.Err())
	return out
}

func TestNewFileExporter_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "traces.jsonl")

	exp, err := NewFileExporter(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, exp.Shutdown(context.Background()))
}

func TestFileExporter_WritesOneRecordPerSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	exp, err := NewFileExporter(path)
	require.NoError(t, err)

	start := time.Now()
	stubs := tracetest.SpanStubs{
		{
			Name:       SpanVimExecute,
			StartTime:  start,
			EndTime:    start.Add(1500 * time.Microsecond),
			Attributes: []attribute.KeyValue{attribute.String(AttrCommandKeys, "dw")},
			Status:     sdktrace.Status{Code: codes.Ok},
		},
		{
			Name:      SpanEditorKey,
			StartTime: start,
			EndTime:   start,
			Status:    sdktrace.Status{Code: codes.Error},
		},
	}
	require.NoError(t, exp.ExportSpans(context.Background(), stubs.Snapshots()))
	require.NoError(t, exp.Shutdown(context.Background()))

	recs := readRecords(t, path)
	require.Len(t, recs, 2)
	require.Equal(t, SpanVimExecute, recs[0].Name)
	require.Equal(t, "OK", recs[0].Status)
	require.Equal(t, int64(1500), recs[0].DurationUs)
	require.Equal(t, "dw", recs[0].Attributes[AttrCommandKeys])
	require.Equal(t, "ERROR", recs[1].Status)
	require.Empty(t, recs[1].Attributes)
}

func TestFileExporter_ExportAfterShutdownFails(t *testing.T) {
	exp, err := NewFileExporter(filepath.Join(t.TempDir(), "traces.jsonl"))
	require.NoError(t, err)
	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late"}
	err = exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.Error(t, err)
}
