package component

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-sprinkles/framework/dom"
)

// DefaultMarker is the attribute naming an element's controller.
const DefaultMarker = "data-controller"

// Bootstrap mounts a controller on root and on every descendant carrying the
// marker attribute, in document order:
//
//	<ul data-controller="todo-list">...</ul>  →  f.Instantiate("todo-list", component.At(ul))
//
// An element that fails to mount does not stop the others; all failures are
// returned joined.
func (f *Factory) Bootstrap(root dom.Element, marker string) ([]*Mount, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	selector := "[" + marker + "]"

	candidates, err := root.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	if _, ok := root.Attribute(marker); ok {
		candidates = append([]dom.Element{root}, candidates...)
	}

	var (
		mounts []*Mount
		errs   []error
	)
	for _, el := range candidates {
		value, _ := el.Attribute(marker)
		name := strings.TrimSpace(value)
		if name == "" {
			continue
		}
		m, err := f.Mount(name, At(el))
		if err != nil {
			errs = append(errs, fmt.Errorf("mount <%s %s=%q>: %w", el.Tag(), marker, name, err))
			continue
		}
		mounts = append(mounts, m)
	}

	f.logger.Debug("bootstrap finished",
		zap.String("marker", marker),
		zap.Int("mounted", len(mounts)),
		zap.Int("failed", len(errs)),
	)
	return mounts, errors.Join(errs...)
}
