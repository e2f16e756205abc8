// Package outputs bridges deployment output files into running application
// code. Each stack's outputs file is resolved, schema-validated and memoized
// on first access; the cached value is the only value any caller observes
// for the remainder of the process.
package outputs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/sourceplane/stackctl/internal/registry"
)

const (
	outputsRoot = "cdktf-outputs"
	stacksDir   = "stacks"
	outputsFile = "outputs.json"
)

// Values is the validated output sub-object of one stack.
type Values map[string]interface{}

// String returns the named output field when it is a string.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Loader resolves, validates and caches stack outputs. Construct one per
// process (or per test case); the cache is instance state, not a package
// singleton, and dies with its owner.
type Loader struct {
	reg  *registry.Registry
	base string

	mu    sync.Mutex
	cache map[string]Values
	group singleflight.Group

	// swapped in tests
	readFile func(string) ([]byte, error)
	stat     func(string) (os.FileInfo, error)
}

// Option configures a Loader.
type Option func(*Loader)

// WithBase overrides the base directory outputs are resolved under. The
// default is the process working directory.
func WithBase(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.base = dir
		}
	}
}

// NewLoader returns a loader over the given registry with an empty cache.
func NewLoader(reg *registry.Registry, opts ...Option) *Loader {
	l := &Loader{
		reg:      reg,
		base:     ".",
		cache:    make(map[string]Values),
		readFile: os.ReadFile,
		stat:     os.Stat,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the deterministic outputs file location for a stack under the
// given base directory: <base>/cdktf-outputs/stacks/<stack>/outputs.json.
func Path(base, stack string) string {
	return filepath.Join(base, outputsRoot, stacksDir, stack, outputsFile)
}

// Load returns the validated outputs of the named stack, reading and
// validating its outputs file on first access and the cache afterwards.
// Concurrent first loads of the same stack coalesce into a single read; all
// callers receive the same value or the same failure.
func (l *Loader) Load(name string) (Values, error) {
	return l.LoadFrom(name, l.base)
}

// LoadFrom is Load with a per-call base directory override. The cache is
// keyed by stack name regardless of base: the first successful load wins for
// the process lifetime.
func (l *Loader) LoadFrom(name, base string) (Values, error) {
	desc, ok := l.reg.Lookup(name)
	if !ok {
		return nil, &UnknownStackError{Stack: name}
	}

	if vals, ok := l.cached(name); ok {
		return vals, nil
	}

	result, err, _ := l.group.Do(name, func() (interface{}, error) {
		// A previous flight may have completed between the cache check
		// and Do; the cache stays authoritative.
		if vals, ok := l.cached(name); ok {
			return vals, nil
		}
		vals, err := l.read(desc, base)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[name] = vals
		l.mu.Unlock()
		return vals, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(Values), nil
}

func (l *Loader) cached(name string) (Values, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	vals, ok := l.cache[name]
	return vals, ok
}

// read performs the uncached load: existence check, parse, schema
// validation, extraction of the sub-object keyed by the stack's own name.
func (l *Loader) read(desc *registry.Descriptor, base string) (Values, error) {
	if base == "" {
		base = l.base
	}
	path := Path(base, desc.Name)

	if _, err := l.stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingOutputError{Stack: desc.Name, Path: path}
		}
		return nil, errors.Wrapf(err, "stat outputs for stack %q", desc.Name)
	}

	raw, err := l.readFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read outputs for stack %q", desc.Name)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Stack: desc.Name, Path: path, Cause: err}
	}

	if desc.OutputSchema != nil {
		if err := desc.OutputSchema.Validate(doc); err != nil {
			return nil, &ValidationError{Stack: desc.Name, Path: path, Cause: err}
		}
	}

	sub, ok := doc[desc.Name].(map[string]interface{})
	if !ok {
		return nil, &ValidationError{
			Stack: desc.Name,
			Path:  path,
			Cause: errors.Errorf("missing top-level %q key", desc.Name),
		}
	}
	return Values(sub), nil
}
