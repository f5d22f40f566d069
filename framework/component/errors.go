package component

import "fmt"

// MissingElementArgumentError is returned when Instantiate receives no Anchor.
type MissingElementArgumentError struct {
	Controller string
}

func (e *MissingElementArgumentError) Error() string {
	return fmt.Sprintf("component: [%s] needs an anchor element argument (component.At)", e.Controller)
}

// AmbiguousElementArgumentError is returned when Instantiate receives more
// than one Anchor.
type AmbiguousElementArgumentError struct {
	Controller string
	Count      int
}

func (e *AmbiguousElementArgumentError) Error() string {
	return fmt.Sprintf("component: [%s] received %d anchor elements, want exactly one", e.Controller, e.Count)
}

// ConstructorError wraps a failure of a controller's constructor.
type ConstructorError struct {
	Controller string
	Err        error
}

func (e *ConstructorError) Error() string {
	return fmt.Sprintf("component: constructing [%s]: %v", e.Controller, e.Err)
}

func (e *ConstructorError) Unwrap() error {
	return e.Err
}
