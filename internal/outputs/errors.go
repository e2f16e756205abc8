package outputs

import "fmt"

// UnknownStackError reports a request for a stack name with no descriptor in
// the registry. This is a programming/configuration error, deliberately
// distinct from MissingOutputError (undeployed infrastructure).
type UnknownStackError struct {
	Stack string
}

func (e *UnknownStackError) Error() string {
	return fmt.Sprintf("unknown stack %q: no matching descriptor in the registry", e.Stack)
}

// MissingOutputError reports that no outputs file exists at the resolved
// path. The stack was never deployed, or was deployed to a different
// location; the operator recovers by deploying first.
type MissingOutputError struct {
	Stack string
	Path  string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("no deployment outputs for stack %q at %s", e.Stack, e.Path)
}

// ValidationError reports an outputs file that exists but cannot be parsed
// or fails its stack's output contract. The underlying parser/validator
// diagnostic is preserved as the cause.
type ValidationError struct {
	Stack string
	Path  string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("outputs for stack %q at %s failed validation: %v", e.Stack, e.Path, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
