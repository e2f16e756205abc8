package gate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sourceplane/stackctl/internal/registry"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCheckPassesWithoutRequirements(t *testing.T) {
	g := New(t.TempDir())
	report := g.Check(&registry.Descriptor{Name: "api"})
	if !report.OK() {
		t.Fatalf("expected pass, got %+v", report)
	}
}

func TestCheckReportsEveryMissingArtifact(t *testing.T) {
	g := New(t.TempDir())
	d := &registry.Descriptor{
		Name: "lambda",
		RequiredArtifacts: []registry.ArtifactRequirement{
			{Path: "build/app.zip", Description: "lambda bundle"},
			{Path: "build/layer.zip", Description: "shared layer"},
		},
	}

	report := g.Check(d)
	if report.OK() {
		t.Fatalf("expected skip")
	}
	if len(report.Missing) != 2 {
		t.Fatalf("missing=%+v", report.Missing)
	}
	summary := report.Summary()
	for _, want := range []string{"build/app.zip", "lambda bundle", "build/layer.zip", "shared layer"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary %q missing %q", summary, want)
		}
	}
}

func TestCheckPassesWhenArtifactsPresent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build", "app.zip"), "zip")

	g := New(dir)
	d := &registry.Descriptor{
		Name: "lambda",
		RequiredArtifacts: []registry.ArtifactRequirement{
			{Path: "build/app.zip", Description: "lambda bundle"},
		},
	}

	if report := g.Check(d); !report.OK() {
		t.Fatalf("expected pass, got %+v", report)
	}
}

func TestCheckReportsPartialMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "build", "app.zip"), "zip")

	g := New(dir)
	d := &registry.Descriptor{
		Name: "lambda",
		RequiredArtifacts: []registry.ArtifactRequirement{
			{Path: "build/app.zip", Description: "lambda bundle"},
			{Path: "build/layer.zip", Description: "shared layer"},
		},
	}

	report := g.Check(d)
	if report.OK() {
		t.Fatalf("expected skip")
	}
	if len(report.Missing) != 1 || report.Missing[0].Path != "build/layer.zip" {
		t.Fatalf("missing=%+v", report.Missing)
	}
}
