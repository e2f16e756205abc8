package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourceplane/stackctl/internal/config"
	"github.com/sourceplane/stackctl/internal/gate"
	"github.com/sourceplane/stackctl/internal/registry"
	"github.com/sourceplane/stackctl/internal/selector"
)

// recorder captures constructor invocations in order.
type recorder struct {
	ids     []string
	regions []string
	props   []registry.Props
}

func (r *recorder) constructor() registry.Constructor {
	return func(scope registry.Scope, id string, props registry.Props) error {
		r.ids = append(r.ids, id)
		r.regions = append(r.regions, scope.Region())
		r.props = append(r.props, props)
		return nil
	}
}

func mustRegistry(t *testing.T, descs ...registry.Descriptor) *registry.Registry {
	t.Helper()
	reg, err := registry.New(descs...)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func TestRunRequiresRegion(t *testing.T) {
	d := &Driver{Registry: mustRegistry(t), Selection: selector.MatchAll()}
	_, err := d.Run()
	var missing *config.MissingRegionError
	if !errors.As(err, &missing) {
		t.Fatalf("error type: %T (%v)", err, err)
	}
}

func TestRunExpandsStagesAndInjectsRegion(t *testing.T) {
	rec := &recorder{}
	reg := mustRegistry(t, registry.Descriptor{
		Name:        "api",
		Stages:      []string{"dev", "prod"},
		Props:       registry.Props{"memory": 512},
		Constructor: rec.constructor(),
	})

	d := &Driver{
		Registry:  reg,
		Selection: selector.MatchAll(),
		Gate:      gate.New(t.TempDir()),
		Region:    "eu-west-1",
	}
	summary, err := d.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(rec.ids) != 2 || rec.ids[0] != "api-dev" || rec.ids[1] != "api-prod" {
		t.Fatalf("ids=%v", rec.ids)
	}
	for i, props := range rec.props {
		if props["region"] != "eu-west-1" || props["memory"] != 512 {
			t.Fatalf("instance %d props=%v", i, props)
		}
	}
	if len(summary.Instantiated) != 2 || len(summary.Skipped) != 0 {
		t.Fatalf("summary=%+v", summary)
	}
}

func TestRunBootstrapIgnoresSelectionAndStages(t *testing.T) {
	rec := &recorder{}
	reg := mustRegistry(t,
		registry.Descriptor{
			Name:        registry.BootstrapStack,
			Stages:      []string{"dev", "prod"},
			Constructor: rec.constructor(),
		},
		registry.Descriptor{Name: "api", Constructor: rec.constructor()},
		registry.Descriptor{Name: "worker", Constructor: rec.constructor()},
	)

	d := &Driver{
		Registry:  reg,
		Selection: selector.Exact("worker"),
		Gate:      gate.New(t.TempDir()),
		Region:    "eu-west-1",
	}
	if _, err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(rec.ids) != 2 || rec.ids[0] != registry.BootstrapStack || rec.ids[1] != "worker" {
		t.Fatalf("ids=%v", rec.ids)
	}
}

func TestRunSkipsStackWithMissingArtifacts(t *testing.T) {
	rec := &recorder{}
	dir := t.TempDir()
	reg := mustRegistry(t,
		registry.Descriptor{
			Name:        "lambda",
			Constructor: rec.constructor(),
			RequiredArtifacts: []registry.ArtifactRequirement{
				{Path: "build/app.zip", Description: "lambda bundle"},
			},
		},
		registry.Descriptor{Name: "api", Constructor: rec.constructor()},
	)

	d := &Driver{
		Registry:  reg,
		Selection: selector.MatchAll(),
		Gate:      gate.New(dir),
		Region:    "eu-west-1",
	}
	summary, err := d.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// lambda skipped entirely, deployment continued with api
	if len(rec.ids) != 1 || rec.ids[0] != "api" {
		t.Fatalf("ids=%v", rec.ids)
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0].Stack != "lambda" {
		t.Fatalf("skipped=%+v", summary.Skipped)
	}
	if m := summary.Skipped[0].Missing; len(m) != 1 || m[0].Path != "build/app.zip" || m[0].Description != "lambda bundle" {
		t.Fatalf("missing=%+v", m)
	}
}

func TestRunProceedsWhenArtifactsPresent(t *testing.T) {
	rec := &recorder{}
	dir := t.TempDir()
	zip := filepath.Join(dir, "build", "app.zip")
	if err := os.MkdirAll(filepath.Dir(zip), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(zip, []byte("zip"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reg := mustRegistry(t, registry.Descriptor{
		Name:        "lambda",
		Constructor: rec.constructor(),
		Stages:      []string{"dev"},
		RequiredArtifacts: []registry.ArtifactRequirement{
			{Path: "build/app.zip", Description: "lambda bundle"},
		},
	})

	d := &Driver{
		Registry:  reg,
		Selection: selector.MatchAll(),
		Gate:      gate.New(dir),
		Region:    "eu-west-1",
	}
	summary, err := d.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Skipped) != 0 {
		t.Fatalf("skipped=%+v", summary.Skipped)
	}
	if len(rec.ids) != 1 || rec.ids[0] != "lambda-dev" {
		t.Fatalf("ids=%v", rec.ids)
	}
}

func TestRunConstructorFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	reg := mustRegistry(t, registry.Descriptor{
		Name: "api",
		Constructor: func(registry.Scope, string, registry.Props) error {
			return boom
		},
	})

	d := &Driver{
		Registry:  reg,
		Selection: selector.MatchAll(),
		Gate:      gate.New(t.TempDir()),
		Region:    "eu-west-1",
	}
	if _, err := d.Run(); !errors.Is(err, boom) {
		t.Fatalf("error=%v", err)
	}
}
