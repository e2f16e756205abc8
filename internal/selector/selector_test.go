package selector

import (
	"sort"
	"testing"
)

func TestEnvironmentWinsOverArgs(t *testing.T) {
	s := Resolve("a,b", []string{"c", "d"})
	if s.All() {
		t.Fatalf("expected bounded selection")
	}
	names := s.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names=%v", names)
	}
	if s.Matches("c") || s.Matches("d") {
		t.Fatalf("argv names leaked into selection")
	}
}

func TestEnvironmentListToleratesWhitespaceAndBlanks(t *testing.T) {
	s := Resolve(" api , , worker ,", nil)
	if !s.Matches("api") || !s.Matches("worker") {
		t.Fatalf("selection=%v", s.Names())
	}
	if len(s.Names()) != 2 {
		t.Fatalf("names=%v", s.Names())
	}
}

func TestArgsDropScriptPathAndFlags(t *testing.T) {
	s := Resolve("", []string{"deploy.ts", "--verbose", "api-stack"})
	if s.All() {
		t.Fatalf("expected bounded selection")
	}
	if names := s.Names(); len(names) != 1 || names[0] != "api-stack" {
		t.Fatalf("names=%v", names)
	}
}

func TestScriptPathOnlyDroppedWhenLeading(t *testing.T) {
	s := Resolve("", []string{"api-stack", "deploy.sh"})
	if !s.Matches("api-stack") || !s.Matches("deploy.sh") {
		t.Fatalf("names=%v", s.Names())
	}
}

func TestEmptySourcesMatchAll(t *testing.T) {
	s := Resolve("", nil)
	if !s.All() {
		t.Fatalf("expected match-all")
	}
	if !s.Matches("anything") {
		t.Fatalf("match-all refused a name")
	}
	if s.Names() != nil {
		t.Fatalf("match-all should have nil names")
	}
}

func TestBlankArgsMatchAll(t *testing.T) {
	s := Resolve("  ,  ", []string{"deploy.js", "--dry-run", "  "})
	if !s.All() {
		t.Fatalf("expected match-all, got %v", s.Names())
	}
}
