package dom

import (
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
)

// SelectorError is returned for selectors that do not compile.
type SelectorError struct {
	Selector string
	Err      error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("dom: invalid selector %q: %v", e.Selector, e.Err)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}

// compiled selectors, keyed by source text
var selectors sync.Map

func compile(selector string) (cascadia.Selector, error) {
	if cached, ok := selectors.Load(selector); ok {
		return cached.(cascadia.Selector), nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &SelectorError{Selector: selector, Err: err}
	}
	selectors.Store(selector, sel)
	return sel, nil
}

// ValidSelector reports whether selector compiles.
func ValidSelector(selector string) error {
	_, err := compile(selector)
	return err
}
