package preprocess

import (
	componentsgoerrors "github.com/jeswr/components-go/errors"
	"github.com/jeswr/components-go/resource"
	"github.com/jeswr/components-go/vocabulary"
)

var overrideClasses = map[string]bool{
	vocabulary.ClassOverrideListInsertBefore: true,
	vocabulary.ClassOverrideListInsertAfter:  true,
	vocabulary.ClassOverrideListInsertAt:     true,
	vocabulary.ClassOverrideListRemove:       true,
	vocabulary.ClassOverrideReplace:          true,
	vocabulary.ClassOverrideClear:            true,
}

func isOverrideStep(r *resource.Resource) bool {
	for _, t := range r.Types() {
		if overrideClasses[t.ID] {
			return true
		}
	}
	return false
}

type overrideGroup struct {
	predicate string
	base      []*resource.Resource
	steps     []*resource.Resource
}

type overrideHandle struct {
	groups []overrideGroup
}

// Override applies the list-editing override steps (ListInsertBefore,
// ListInsertAfter, ListInsertAt, ListRemove, Replace, Clear) to any
// parameter whose value list contains one or more override-step
// resources (spec §4.2 "Override steps"). A parameter's override steps
// are carried as additional values under the parameter's own
// predicate, alongside the base list they edit; this preprocessor
// separates the two and applies the edits in encounter order.
type Override struct {
	store *resource.Store
}

// NewOverride builds an Override preprocessor.
func NewOverride(store *resource.Store) *Override {
	return &Override{store: store}
}

func (p *Override) CanHandle(config *resource.Resource) (Handle, bool) {
	var groups []overrideGroup
	for predicate, values := range config.Properties() {
		var base, steps []*resource.Resource
		for _, v := range values {
			if isOverrideStep(v) {
				steps = append(steps, v)
			} else {
				base = append(base, v)
			}
		}
		if len(steps) > 0 {
			groups = append(groups, overrideGroup{predicate: predicate, base: base, steps: steps})
		}
	}
	if len(groups) == 0 {
		return nil, false
	}
	return overrideHandle{groups: groups}, true
}

func (p *Override) Transform(config *resource.Resource, handle Handle) (*resource.Resource, error) {
	h := handle.(overrideHandle)
	for _, group := range h.groups {
		result := append([]*resource.Resource{}, group.base...)
		for _, step := range group.steps {
			var err error
			result, err = applyOverrideStep(p.store, config, group.predicate, result, step)
			if err != nil {
				return nil, err
			}
		}
		if len(result) == 0 {
			config.RemoveProperty(group.predicate)
		} else {
			_ = config.SetProperty(group.predicate, result...)
		}
	}
	return config, nil
}

func applyOverrideStep(store *resource.Store, config *resource.Resource, predicate string, current []*resource.Resource, step *resource.Resource) ([]*resource.Resource, error) {
	values := overrideValues(step)

	switch {
	case step.IsA(vocabulary.ClassOverrideClear):
		return nil, nil

	case step.IsA(vocabulary.ClassOverrideListInsertBefore):
		target, ok := step.First(vocabulary.PredOverrideTarget)
		if !ok {
			return nil, componentsgoerrors.InvalidConfig(config.ID, predicate, "OverrideListInsertBefore requires overrideTarget")
		}
		idx := indexOfIdentity(current, target)
		if idx < 0 {
			return current, nil
		}
		return spliceAt(current, idx, values), nil

	case step.IsA(vocabulary.ClassOverrideListInsertAfter):
		target, ok := step.First(vocabulary.PredOverrideTarget)
		if !ok {
			return nil, componentsgoerrors.InvalidConfig(config.ID, predicate, "OverrideListInsertAfter requires overrideTarget")
		}
		idx := indexOfIdentity(current, target)
		if idx < 0 {
			return current, nil
		}
		return spliceAt(current, idx+1, values), nil

	case step.IsA(vocabulary.ClassOverrideListInsertAt):
		idxRes, ok := step.First(vocabulary.PredOverrideIndex)
		if !ok || !idxRes.IsLiteral() {
			return nil, componentsgoerrors.InvalidConfig(config.ID, predicate, "OverrideListInsertAt requires a Literal overrideIndex")
		}
		idx := parseIndex(idxRes.Value)
		if idx < 0 || idx > len(current) {
			return nil, componentsgoerrors.OverrideIndexOutOfRange(config.ID, predicate, idx, len(current))
		}
		return spliceAt(current, idx, values), nil

	case step.IsA(vocabulary.ClassOverrideListRemove):
		removeSet := make(map[*resource.Resource]bool, len(values))
		for _, v := range values {
			removeSet[v] = true
		}
		out := make([]*resource.Resource, 0, len(current))
		for _, c := range current {
			if !removeSet[c] {
				out = append(out, c)
			}
		}
		return out, nil

	case step.IsA(vocabulary.ClassOverrideReplace):
		target, ok := step.First(vocabulary.PredOverrideTarget)
		if !ok {
			return nil, componentsgoerrors.InvalidConfig(config.ID, predicate, "OverrideReplace requires overrideTarget")
		}
		idx := indexOfIdentity(current, target)
		if idx < 0 {
			return current, nil
		}
		out := append([]*resource.Resource{}, current[:idx]...)
		out = append(out, values...)
		out = append(out, current[idx+1:]...)
		return out, nil

	default:
		return current, nil
	}
}

// overrideValues expands overrideValue into one or more items: a list
// value is spliced in order, a scalar value is a single item (spec
// §4.2: "Override-value may itself be a list, in which case its items
// are spliced in order").
func overrideValues(step *resource.Resource) []*resource.Resource {
	value, ok := step.First(vocabulary.PredOverrideValue)
	if !ok {
		return nil
	}
	if _, isList := value.First(vocabulary.RDFFirst); isList {
		members, err := value.List()
		if err == nil {
			return members
		}
	}
	if resource.IsRDFNil(value) {
		return nil
	}
	return []*resource.Resource{value}
}

func indexOfIdentity(list []*resource.Resource, target *resource.Resource) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}

func spliceAt(list []*resource.Resource, idx int, values []*resource.Resource) []*resource.Resource {
	out := make([]*resource.Resource, 0, len(list)+len(values))
	out = append(out, list[:idx]...)
	out = append(out, values...)
	out = append(out, list[idx:]...)
	return out
}

func parseIndex(s string) int {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		return -1
	}
	return n
}
