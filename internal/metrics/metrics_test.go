package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	first := EntriesRemovedTotal
	Init()
	if EntriesRemovedTotal != first {
		t.Error("Init must not replace metrics on repeat calls")
	}
}

func TestWriteTextfile(t *testing.T) {
	Init()
	EntriesRemovedTotal.Inc()
	BytesFreedTotal.Add(2048)
	RecordCategoryRemoval("Development test files")
	RecordRun()

	path := filepath.Join(t.TempDir(), "textfile", "repo-sweep.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"reposweep_entries_removed_total",
		"reposweep_bytes_freed_total",
		"reposweep_errors_total",
		"reposweep_last_run_timestamp",
		"reposweep_run_duration_seconds",
		`reposweep_category_entries_removed_total{category="Development test files"}`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("textfile missing %q", want)
		}
	}

	// No half-written temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestWriteTextfileCreatesParentDir(t *testing.T) {
	Init()
	path := filepath.Join(t.TempDir(), "not", "yet", "there", "sweep.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile should create parent directories: %v", err)
	}
}
