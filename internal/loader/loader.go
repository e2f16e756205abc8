// Package loader builds a stack registry from a config directory of stack
// manifests. Each stack lives in its own subdirectory holding a stack.yaml
// manifest and an outputs.schema.yaml output contract.
package loader

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sourceplane/stackctl/internal/registry"
	"github.com/sourceplane/stackctl/internal/schema"
)

const (
	manifestFile = "stack.yaml"
	contractFile = "outputs.schema.yaml"
)

// Manifest is the on-disk declaration of one stack.
type Manifest struct {
	APIVersion  string `yaml:"apiVersion"`
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// DeployOrder sorts stacks into deployment dependency order. The
	// bootstrap stack is always first regardless of its value; ties break
	// by name.
	DeployOrder int `yaml:"deployOrder"`

	Props             map[string]interface{}         `yaml:"props"`
	Stages            []string                       `yaml:"stages"`
	RequiredArtifacts []registry.ArtifactRequirement `yaml:"requiredArtifacts"`
}

// FromDir scans a config directory and builds the registry. The path may be
// exact (stack subdirectories looked up directly beneath it) or a glob
// pattern (each match treated as such a directory). constructors binds stack
// names to their deployable factories; unbound stacks keep a nil constructor
// and the driver substitutes its synth-only default.
func FromDir(configDir string, constructors map[string]registry.Constructor) (*registry.Registry, error) {
	searchPaths, err := resolveSearchPaths(configDir)
	if err != nil {
		return nil, err
	}

	type loaded struct {
		manifest Manifest
		dir      string
	}
	var stacks []loaded

	for _, basePath := range searchPaths {
		entries, err := os.ReadDir(basePath)
		if err != nil {
			return nil, errors.Wrapf(err, "read config directory %s", basePath)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			stackDir := filepath.Join(basePath, entry.Name())
			manifestPath := filepath.Join(stackDir, manifestFile)
			if _, err := os.Stat(manifestPath); err != nil {
				continue
			}

			raw, err := os.ReadFile(manifestPath)
			if err != nil {
				return nil, errors.Wrapf(err, "read manifest %s", manifestPath)
			}
			var m Manifest
			if err := yaml.Unmarshal(raw, &m); err != nil {
				return nil, errors.Wrapf(err, "parse manifest %s", manifestPath)
			}
			if m.Name == "" {
				m.Name = entry.Name()
			}
			stacks = append(stacks, loaded{manifest: m, dir: stackDir})
		}
	}

	if len(stacks) == 0 {
		return nil, errors.Errorf("no %s manifests found in config path: %s", manifestFile, configDir)
	}

	// Deployment dependency order: bootstrap first, then deployOrder, then
	// name for stability.
	sort.SliceStable(stacks, func(i, j int) bool {
		a, b := stacks[i].manifest, stacks[j].manifest
		if (a.Name == registry.BootstrapStack) != (b.Name == registry.BootstrapStack) {
			return a.Name == registry.BootstrapStack
		}
		if a.DeployOrder != b.DeployOrder {
			return a.DeployOrder < b.DeployOrder
		}
		return a.Name < b.Name
	})

	descs := make([]registry.Descriptor, 0, len(stacks))
	for _, s := range stacks {
		contractPath := filepath.Join(s.dir, contractFile)
		if _, err := os.Stat(contractPath); err != nil {
			return nil, errors.Errorf("missing %s for stack %s (manifest at %s)", contractFile, s.manifest.Name, s.dir)
		}
		contract, err := schema.CompileFile(contractPath)
		if err != nil {
			return nil, errors.Wrapf(err, "output contract for stack %s", s.manifest.Name)
		}

		descs = append(descs, registry.Descriptor{
			Name:              s.manifest.Name,
			Description:       s.manifest.Description,
			Constructor:       constructors[s.manifest.Name],
			Props:             registry.Props(s.manifest.Props),
			OutputSchema:      contract,
			Stages:            s.manifest.Stages,
			RequiredArtifacts: s.manifest.RequiredArtifacts,
		})
	}

	return registry.New(descs...)
}

func resolveSearchPaths(configDir string) ([]string, error) {
	if strings.Contains(configDir, "*") {
		matches, err := filepath.Glob(configDir)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluate glob pattern %s", configDir)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("glob pattern %s matched no directories", configDir)
		}
		return matches, nil
	}

	info, err := os.Stat(configDir)
	if err != nil {
		return nil, errors.Wrapf(err, "access config directory %s", configDir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("config path is not a directory: %s", configDir)
	}
	return []string{configDir}, nil
}
