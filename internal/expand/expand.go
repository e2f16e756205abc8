// Package expand turns an eligible stack descriptor into its concrete
// instantiations. A descriptor with at least one usable stage is expanded
// once per stage and the single/default path is skipped entirely; a
// descriptor with no usable stages is instantiated exactly once under its
// own name.
package expand

import (
	"fmt"
	"strings"

	"github.com/sourceplane/stackctl/internal/registry"
)

// Instantiation is one planned constructor invocation.
type Instantiation struct {
	// ID is the instance identifier: the stack name, or "<name>-<stage>".
	ID string

	// Stage is empty for the single-instance path.
	Stage string

	// Props are the stack's base properties. Universal properties (region)
	// are layered on by the driver, not here.
	Props registry.Props
}

// Instantiations computes the instantiation plan for a descriptor. The
// bootstrap stack is the caller's concern: the driver never routes it here.
func Instantiations(d *registry.Descriptor) []Instantiation {
	stages := usableStages(d.Stages)
	if len(stages) == 0 {
		return []Instantiation{{ID: d.Name, Props: d.Props}}
	}

	out := make([]Instantiation, 0, len(stages))
	for _, stage := range stages {
		out = append(out, Instantiation{
			ID:    fmt.Sprintf("%s-%s", d.Name, stage),
			Stage: stage,
			Props: d.Props,
		})
	}
	return out
}

// usableStages filters the declared stages down to valid stage identifiers:
// non-empty after trimming, no whitespace, no path separators.
func usableStages(stages []string) []string {
	var out []string
	for _, s := range stages {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if strings.ContainsAny(trimmed, " \t/\\") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
