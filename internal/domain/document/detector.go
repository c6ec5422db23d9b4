package document

import (
	"sort"

	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
)

// DetectionOrderStep is the gap between orders assigned to detected variables.
const DetectionOrderStep = 10

// DetectVariables returns definitions for every placeholder in the template
// body that has no definition in existing. New names are processed in
// alphabetical order and receive orders after the current maximum, spaced by
// DetectionOrderStep. Nothing is persisted.
func DetectVariables(t *Template, existing []*VariableDefinition, shortIDGenerator func() (string, error)) ([]*VariableDefinition, error) {
	if t == nil {
		return nil, ErrMissingTemplate
	}
	if !t.HasContent() {
		return nil, ErrEmptyContent
	}

	known := make(map[string]bool, len(existing))
	maxOrder := 0
	for _, v := range existing {
		known[v.Name()] = true
		if v.Order() > maxOrder {
			maxOrder = v.Order()
		}
	}

	var names []string
	for _, name := range ScanPlaceholders(t.Body()) {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	created := make([]*VariableDefinition, 0, len(names))
	for i, name := range names {
		v, err := NewVariableDefinition(VariableParams{
			TemplateID: t.ID(),
			Name:       name,
			Label:      InferLabel(name),
			Type:       vo.DefaultVariableType,
			Required:   true,
			Order:      maxOrder + DetectionOrderStep*(i+1),
		}, shortIDGenerator)
		if err != nil {
			return nil, err
		}
		created = append(created, v)
	}

	return created, nil
}
