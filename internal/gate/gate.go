// Package gate verifies a stack's filesystem prerequisites before the driver
// instantiates it. A failed check is a reported skip, never a deployment
// failure: remaining stacks continue.
package gate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourceplane/stackctl/internal/registry"
)

// Gate checks artifact requirements against the filesystem.
type Gate struct {
	// Dir is the directory requirement paths are resolved against. Empty
	// means the process working directory.
	Dir string

	// stat is swapped in tests.
	stat func(string) (os.FileInfo, error)
}

// New returns a gate resolving requirement paths under dir.
func New(dir string) *Gate {
	return &Gate{Dir: dir, stat: os.Stat}
}

// Missing is one absent prerequisite.
type Missing struct {
	Path        string
	Description string
}

// Report is the outcome of gating a single stack. Every missing requirement
// is listed, not only the first.
type Report struct {
	Stack   string
	Missing []Missing
}

// OK reports whether the stack may proceed to instantiation.
func (r Report) OK() bool {
	return len(r.Missing) == 0
}

// Summary renders the report for the warning channel.
func (r Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("stack %s: all artifacts present", r.Stack)
	}
	parts := make([]string, 0, len(r.Missing))
	for _, m := range r.Missing {
		parts = append(parts, fmt.Sprintf("%s (%s)", m.Path, m.Description))
	}
	return fmt.Sprintf("stack %s skipped, missing artifacts: %s", r.Stack, strings.Join(parts, ", "))
}

// Check stats every required artifact of the descriptor. A stack with no
// requirements always passes.
func (g *Gate) Check(d *registry.Descriptor) Report {
	report := Report{Stack: d.Name}
	stat := g.stat
	if stat == nil {
		stat = os.Stat
	}
	for _, req := range d.RequiredArtifacts {
		path := req.Path
		if g.Dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(g.Dir, path)
		}
		if _, err := stat(path); err != nil {
			report.Missing = append(report.Missing, Missing{
				Path:        req.Path,
				Description: req.Description,
			})
		}
	}
	return report
}
