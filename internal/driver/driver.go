// Package driver runs the deployment-time pipeline: registry → selection →
// artifact gate → stage expansion → constructor invocation. The pipeline is
// single-threaded and synchronous; it runs once per process invocation.
package driver

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sourceplane/stackctl/internal/config"
	"github.com/sourceplane/stackctl/internal/expand"
	"github.com/sourceplane/stackctl/internal/gate"
	"github.com/sourceplane/stackctl/internal/registry"
	"github.com/sourceplane/stackctl/internal/selector"
)

// Driver instantiates the surviving subset of the registry.
type Driver struct {
	Registry  *registry.Registry
	Selection selector.Selection
	Gate      *gate.Gate
	Logger    *zap.Logger

	// Region is the universal property injected into every instantiation.
	// Required: a missing region aborts the run before any work.
	Region string
}

// Summary reports what a run did.
type Summary struct {
	// Instantiated lists instance identifiers in instantiation order.
	Instantiated []string

	// Skipped lists the artifact-gate reports of stacks that did not run.
	Skipped []gate.Report
}

// Run executes the pipeline. Gate skips are reported and non-fatal;
// constructor failures abort the run.
func (d *Driver) Run() (*Summary, error) {
	if d.Region == "" {
		return nil, &config.MissingRegionError{Variable: config.EnvPrefix + "_REGION"}
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	g := d.Gate
	if g == nil {
		g = gate.New("")
	}

	scope := &deployScope{region: d.Region, logger: log}
	summary := &Summary{}

	for _, desc := range d.Registry.All() {
		bootstrap := desc.Name == registry.BootstrapStack

		// The bootstrap stack always runs as a single global unit; it is
		// exempt from per-run selection and from stage expansion.
		if !bootstrap && !d.Selection.Matches(desc.Name) {
			log.Debug("stack not selected", zap.String("stack", desc.Name))
			continue
		}

		if report := g.Check(&desc); !report.OK() {
			for _, m := range report.Missing {
				log.Warn("required artifact missing",
					zap.String("stack", desc.Name),
					zap.String("path", m.Path),
					zap.String("description", m.Description),
				)
			}
			summary.Skipped = append(summary.Skipped, report)
			continue
		}

		insts := []expand.Instantiation{{ID: desc.Name, Props: desc.Props}}
		if !bootstrap {
			insts = expand.Instantiations(&desc)
		}

		for _, inst := range insts {
			props := universalProps(inst.Props, d.Region)
			if err := d.instantiate(scope, &desc, inst.ID, props); err != nil {
				return nil, errors.Wrapf(err, "instantiate stack %s", inst.ID)
			}
			log.Info("stack instantiated",
				zap.String("stack", desc.Name),
				zap.String("instance", inst.ID),
				zap.String("stage", inst.Stage),
			)
			summary.Instantiated = append(summary.Instantiated, inst.ID)
		}
	}

	return summary, nil
}

func (d *Driver) instantiate(scope registry.Scope, desc *registry.Descriptor, id string, props registry.Props) error {
	ctor := desc.Constructor
	if ctor == nil {
		ctor = synthOnly
	}
	return ctor(scope, id, props)
}

// universalProps layers the shared region property over a stack's own props
// without mutating the descriptor.
func universalProps(base registry.Props, region string) registry.Props {
	props := make(registry.Props, len(base)+1)
	for k, v := range base {
		props[k] = v
	}
	props["region"] = region
	return props
}

// synthOnly stands in for stacks whose constructor is bound elsewhere: it
// records the instantiation without provisioning anything.
func synthOnly(scope registry.Scope, id string, props registry.Props) error {
	scope.Logger().Info("synthesized stack instance (no constructor bound)",
		zap.String("instance", id),
		zap.String("region", scope.Region()),
	)
	return nil
}

type deployScope struct {
	region string
	logger *zap.Logger
}

func (s *deployScope) Region() string      { return s.region }
func (s *deployScope) Logger() *zap.Logger { return s.logger }
