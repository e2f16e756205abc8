// Package selector resolves which registered stacks a deployment invocation
// acts on. The selection environment variable wins outright when it names at
// least one stack; otherwise the command-line arguments are consulted; when
// both are empty every stack is eligible.
package selector

import (
	"path/filepath"
	"strings"
)

// scriptExtensions identifies a leading argv token that is the invoking
// script rather than a stack name.
var scriptExtensions = map[string]struct{}{
	".ts":  {},
	".js":  {},
	".mjs": {},
	".cjs": {},
	".sh":  {},
}

// Selection is the set of stack names eligible for this invocation. The zero
// value is not meaningful; use Resolve or MatchAll.
type Selection struct {
	names map[string]struct{}
	all   bool
}

// MatchAll returns the unbounded selection: every stack is eligible.
func MatchAll() Selection {
	return Selection{all: true}
}

// Exact returns a selection containing exactly the given names.
func Exact(names ...string) Selection {
	s := Selection{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Resolve derives the selection set for one invocation. envList is the raw
// comma-separated value of the selection environment variable; args are the
// process arguments after the program name. The environment always wins over
// argv when it yields at least one name; the two sources are never merged.
func Resolve(envList string, args []string) Selection {
	if names := splitList(envList); len(names) > 0 {
		return Exact(names...)
	}
	if names := fromArgs(args); len(names) > 0 {
		return Exact(names...)
	}
	return MatchAll()
}

// Matches reports whether the named stack is part of this invocation.
func (s Selection) Matches(name string) bool {
	if s.all {
		return true
	}
	_, ok := s.names[name]
	return ok
}

// All reports whether the selection is unbounded.
func (s Selection) All() bool {
	return s.all
}

// Names returns the explicit stack names, or nil for a match-all selection.
func (s Selection) Names() []string {
	if s.all {
		return nil
	}
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	return names
}

func splitList(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func fromArgs(args []string) []string {
	var names []string
	for i, arg := range args {
		token := strings.TrimSpace(arg)
		if token == "" {
			continue
		}
		if i == 0 && isScriptPath(token) {
			continue
		}
		if strings.HasPrefix(token, "-") {
			continue
		}
		names = append(names, token)
	}
	return names
}

func isScriptPath(token string) bool {
	_, ok := scriptExtensions[strings.ToLower(filepath.Ext(token))]
	return ok
}
