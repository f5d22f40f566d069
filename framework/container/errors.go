package container

import (
	"fmt"
	"strings"
)

// UnknownDependencyError is returned when a token has no registered definition.
type UnknownDependencyError struct {
	Token     string
	Requester string
}

func (e *UnknownDependencyError) Error() string {
	if e.Requester == "" {
		return fmt.Sprintf("container: no definition registered for [%s]", e.Token)
	}
	return fmt.Sprintf("container: no definition registered for [%s] (required by [%s])", e.Token, e.Requester)
}

// CircularDependencyError is returned when a service's resolution path
// revisits a service that is still under construction.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("container: circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// InvalidDependencyKindError is returned when a token resolves to a definition
// of a kind that cannot be injected, e.g. a controller.
type InvalidDependencyKindError struct {
	Token     string
	Kind      Kind
	Requester string
}

func (e *InvalidDependencyKindError) Error() string {
	if e.Requester == "" {
		return fmt.Sprintf("container: [%s] is a %s and cannot be used here", e.Token, e.Kind)
	}
	return fmt.Sprintf("container: [%s] is a %s and cannot be injected into [%s]", e.Token, e.Kind, e.Requester)
}

// InvalidDefinitionError is returned by Define when a definition is malformed.
type InvalidDefinitionError struct {
	Name   string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("container: invalid definition [%s]: %s", e.Name, e.Reason)
}

// ServiceError wraps an error returned by a service factory.
type ServiceError struct {
	Name string
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("container: service [%s] failed to build: %v", e.Name, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// TypeMismatchError is returned by Resolve when the resolved value does not
// have the requested type.
type TypeMismatchError struct {
	Token    string
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("container: [%s] resolved to %s, expected %s", e.Token, e.Got, e.Expected)
}

// ProviderError is returned by Lookup when the deferred provider owning a
// token fails to boot.
type ProviderError struct {
	Token    string
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("container: provider %s for [%s] failed to boot: %v", e.Provider, e.Token, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
