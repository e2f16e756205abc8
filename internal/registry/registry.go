package registry

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// BootstrapStack is the name of the stack that provisions backend/state
// infrastructure every other stack assumes. It is registered first, always
// deploys as a single global unit, and is exempt from stage expansion and
// per-run selection filtering.
const BootstrapStack = "bootstrap"

// Props holds stack-specific properties, excluding universal properties
// (region and friends) which the driver injects at instantiation time.
type Props map[string]interface{}

// Scope is the deployment context a constructor attaches its unit to.
type Scope interface {
	Region() string
	Logger() *zap.Logger
}

// Constructor produces a deployable unit for a stack instance. The id is the
// instance identifier: the stack name, or "<name>-<stage>" for staged stacks.
// The core treats constructors as opaque capabilities and never inspects what
// they build.
type Constructor func(scope Scope, id string, props Props) error

// ArtifactRequirement is a filesystem prerequisite that must exist before a
// stack may be instantiated. Paths are resolved relative to the process
// working directory; contents are never inspected.
type ArtifactRequirement struct {
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description" json:"description"`
}

// Descriptor declares a single deployable stack.
type Descriptor struct {
	Name        string
	Description string
	Constructor Constructor
	Props       Props

	// OutputSchema describes the shape of the stack's outputs file. It is
	// used only for validation on the consumer path, never for provisioning.
	OutputSchema *jsonschema.Schema

	// Stages, when non-empty, causes the stack to be instantiated once per
	// stage instead of once globally.
	Stages []string

	// RequiredArtifacts gates instantiation on files existing on disk.
	RequiredArtifacts []ArtifactRequirement
}

// Staged reports whether the descriptor declares any stages at all. Whether
// those stages are usable is decided by the expander.
func (d *Descriptor) Staged() bool {
	return len(d.Stages) > 0
}

// Registry is the ordered, immutable catalog of stack descriptors. Order is
// deployment dependency order: the bootstrap stack first, later stacks
// assuming its infrastructure exists. There is no mutation API; the catalog
// is fixed at construction.
type Registry struct {
	ordered []Descriptor
	index   map[string]*Descriptor
}

// New builds a registry from descriptors in declaration order. Duplicate
// names are a construction error: they would make output resolution and
// selection ambiguous, so the process must fail before any stack is selected
// or instantiated.
func New(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		ordered: make([]Descriptor, len(descs)),
		index:   make(map[string]*Descriptor, len(descs)),
	}
	copy(r.ordered, descs)
	for i := range r.ordered {
		d := &r.ordered[i]
		if d.Name == "" {
			return nil, fmt.Errorf("stack descriptor at position %d has no name", i)
		}
		if _, dup := r.index[d.Name]; dup {
			return nil, fmt.Errorf("duplicate stack name %q in registry", d.Name)
		}
		r.index[d.Name] = d
	}
	return r, nil
}

// All returns the descriptors in registration order. Callers must not modify
// the returned slice.
func (r *Registry) All() []Descriptor {
	return r.ordered
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.index[name]
	return d, ok
}

// Len returns the number of registered stacks.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Names returns the stack names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for i := range r.ordered {
		names = append(names, r.ordered[i].Name)
	}
	return names
}
