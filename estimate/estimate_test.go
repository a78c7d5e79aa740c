package estimate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEstimators(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.c")
	content := "int a;\nint b, c;\nint d;\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		metric Metric
		want   int
	}{
		{MetricLOC, 3},
		{MetricSemicolon, 3},
		{MetricComma, 1},
	} {
		got := ForMetric(tc.metric).Estimate(file)
		if got != tc.want {
			t.Errorf("ForMetric(%s).Estimate = %d, want %d", tc.metric, got, tc.want)
		}
	}
}

func TestEstimateMissingFileIsZero(t *testing.T) {
	got := ForMetric(MetricLOC).Estimate("/nonexistent/file/does/not/exist.c")
	if got != 0 {
		t.Errorf("Estimate(missing) = %d, want 0", got)
	}
}
