package codectrl

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/STBoyden/bag"
	e "github.com/STBoyden/bag/error"

	b "github.com/STBoyden/codectrl-go-protobufs/data/backtrace_data"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolveParams(t *testing.T) {
	defaults := resolveParams(nil)

	require.Equal(t, ReporterParams{surround: 3, host: "127.0.0.1", port: "3002", timeout: 5 * time.Second}, defaults)
	require.Equal(t, defaults, resolveParams([]ReporterParams{NewEmptyReporterParams()}))

	given := resolveParams([]ReporterParams{NewReporterParams(1, "localhost", "4000", time.Second)})
	require.Equal(t, ReporterParams{surround: 1, host: "localhost", port: "4000", timeout: time.Second}, given)
}

func TestBuildLog(t *testing.T) {
	reporter := NewReporter()

	_, _, line, _ := runtime.Caller(0)
	log, err := reporter.buildLog(bag.Of(1, 1, 2), resolveParams(nil))

	require.NoError(t, err)
	require.Equal(t, "Bag map[1:2 2:1]", log.GetMessage())
	require.Equal(t, "bag.Bag[int]", log.GetMessageType())
	require.Equal(t, "Go", log.GetLanguage())
	require.Empty(t, log.GetWarnings())

	_, err = uuid.Parse(log.GetUuid())
	require.NoError(t, err)

	require.NotEmpty(t, log.GetStack())
	require.Equal(t, uint32(line+1), log.GetLineNumber())
	require.Equal(t, "reporter_internal_test.go", filepath.Base(log.GetFileName()))

	snippet := log.GetCodeSnippet()
	require.Len(t, snippet, 7)
	require.Contains(t, snippet[uint32(line+1)], "reporter.buildLog(")
}

func TestBuildLogEmptyBagWarns(t *testing.T) {
	log, err := NewReporter().buildLog(bag.New[string](), resolveParams(nil))

	require.NoError(t, err)
	require.Equal(t, "Bag map[]", log.GetMessage())
	require.Equal(t, []string{"bag is empty"}, log.GetWarnings())
}

func TestDeduplicateStack(t *testing.T) {
	stack := []*b.BacktraceData{
		{FilePath: "a.go", LineNumber: 10, Name: "first"},
		{FilePath: "a.go", LineNumber: 10, Name: "again"},
		{FilePath: "b.go", LineNumber: 10, Name: "other file"},
		{FilePath: "a.go", LineNumber: 11, Name: "next line"},
	}

	got := deduplicateStack(stack)

	names := []string{}
	for _, frame := range got {
		names = append(names, frame.GetName())
	}

	if d := cmp.Diff([]string{"first", "other file", "next line"}, names); d != "" {
		t.Errorf("deduplicateStack mismatch (-want +got):\n%s", d)
	}
}

func writeLines(t *testing.T, n int) string {
	t.Helper()

	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line " + string(rune('a'+i))
	}

	path := filepath.Join(t.TempDir(), "source.go")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))

	return path
}

func TestGetCode(t *testing.T) {
	path := writeLines(t, 5)

	code, err := getCode(path, 2)
	require.NoError(t, err)
	require.Equal(t, "line b", code)

	_, err = getCode(path, 6)
	require.True(t, e.IsType(err, e.LineNumTooLargeError))

	_, err = getCode(path, 0)
	require.True(t, e.IsType(err, e.LineNumZeroError))

	_, err = getCode(filepath.Join(t.TempDir(), "missing.go"), 1)
	require.True(t, e.IsType(err, e.IoError))
}

func TestGetCodeSnippet(t *testing.T) {
	path := writeLines(t, 5)

	snippet, err := getCodeSnippet(path, 1, 2)
	require.NoError(t, err)
	require.Equal(t, map[uint32]string{1: "line a", 2: "line b", 3: "line c"}, snippet)

	snippet, err = getCodeSnippet(path, 4, 3)
	require.NoError(t, err)
	require.Len(t, snippet, 5)
	require.Equal(t, "line e", snippet[5])
}
