package document

import (
	"fmt"
	"sort"
	"strings"
	"time"

	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
)

const (
	// DefaultVariableOrder is the order given to a variable created without one,
	// and the gap VariableDetector leaves between generated variables.
	DefaultVariableOrder = 10

	MaxVariableNameLength  = 100
	MaxVariableLabelLength = 255
)

// VariableDefinition is the authored schema entry for one placeholder name on
// a template.
type VariableDefinition struct {
	id            uint
	sid           string
	templateID    uint
	name          string
	label         string
	variableType  vo.VariableType
	defaultValue  string
	required      bool
	order         int
	selectOptions []string
	createdAt     time.Time
	updatedAt     time.Time
}

// VariableParams carries the authored attributes of a variable.
type VariableParams struct {
	TemplateID    uint
	Name          string
	Label         string
	Type          vo.VariableType
	DefaultValue  string
	Required      bool
	Order         int
	SelectOptions []string
}

// NewVariableDefinition validates p and creates a variable. An empty name is
// generated from the label, an empty label is inferred from the name and an
// empty type defaults to short text.
func NewVariableDefinition(p VariableParams, shortIDGenerator func() (string, error)) (*VariableDefinition, error) {
	if p.TemplateID == 0 {
		return nil, fmt.Errorf("template ID is required")
	}
	if strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Label) != "" {
		p.Name = NameFromLabel(p.Label)
		if p.Name == "" {
			return nil, fmt.Errorf("cannot derive a variable name from label %q", p.Label)
		}
	}
	if err := validateVariableName(p.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Label) == "" {
		p.Label = InferLabel(p.Name)
	}
	if err := validateVariableLabel(p.Label); err != nil {
		return nil, err
	}
	if p.Type == "" {
		p.Type = vo.DefaultVariableType
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid variable type: %s", p.Type)
	}

	sid, err := shortIDGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to generate variable ID: %w", err)
	}

	now := time.Now()
	return &VariableDefinition{
		sid:           sid,
		templateID:    p.TemplateID,
		name:          p.Name,
		label:         p.Label,
		variableType:  p.Type,
		defaultValue:  p.DefaultValue,
		required:      p.Required,
		order:         p.Order,
		selectOptions: cleanOptions(p.SelectOptions),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructVariableDefinition rebuilds a persisted variable.
func ReconstructVariableDefinition(id uint, sid string, p VariableParams, createdAt, updatedAt time.Time) (*VariableDefinition, error) {
	if id == 0 {
		return nil, fmt.Errorf("variable ID cannot be zero")
	}
	if p.Name == "" {
		return nil, fmt.Errorf("variable name is required")
	}
	if !p.Type.IsValid() {
		p.Type = vo.DefaultVariableType
	}

	return &VariableDefinition{
		id:            id,
		sid:           sid,
		templateID:    p.TemplateID,
		name:          p.Name,
		label:         p.Label,
		variableType:  p.Type,
		defaultValue:  p.DefaultValue,
		required:      p.Required,
		order:         p.Order,
		selectOptions: cleanOptions(p.SelectOptions),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

// NameFromLabel turns a display label into a lowercase snake_case name made
// of a-z, 0-9 and underscores: "Employee's Salary (USD)!" becomes
// "employee_s_salary_usd". The result is empty when the label has no ASCII
// letters or digits.
func NameFromLabel(label string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	name := b.String()
	if len(name) > MaxVariableNameLength {
		name = strings.TrimRight(name[:MaxVariableNameLength], "_")
	}
	return name
}

func validateVariableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("variable name is required")
	}
	if len(name) > MaxVariableNameLength {
		return fmt.Errorf("variable name exceeds maximum length of %d characters", MaxVariableNameLength)
	}
	if !IsPlaceholderName(name) {
		return fmt.Errorf("variable name %q may only contain letters, digits and underscores", name)
	}
	return nil
}

func validateVariableLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("variable label is required")
	}
	if len(label) > MaxVariableLabelLength {
		return fmt.Errorf("variable label exceeds maximum length of %d characters", MaxVariableLabelLength)
	}
	return nil
}

func (v *VariableDefinition) ID() uint { return v.id }
func (v *VariableDefinition) SID() string { return v.sid }
func (v *VariableDefinition) TemplateID() uint { return v.templateID }
func (v *VariableDefinition) Name() string { return v.name }
func (v *VariableDefinition) Label() string { return v.label }
func (v *VariableDefinition) Type() vo.VariableType { return v.variableType }
func (v *VariableDefinition) DefaultValue() string { return v.defaultValue }
func (v *VariableDefinition) Required() bool { return v.required }
func (v *VariableDefinition) Order() int { return v.order }
func (v *VariableDefinition) CreatedAt() time.Time { return v.createdAt }
func (v *VariableDefinition) UpdatedAt() time.Time { return v.updatedAt }
func (v *VariableDefinition) PlaceholderTag() string { return PlaceholderTag(v.name) }

func (v *VariableDefinition) SelectOptions() []string {
	return append([]string(nil), v.selectOptions...)
}

func (v *VariableDefinition) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("variable ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("variable ID cannot be zero")
	}
	v.id = id
	return nil
}

func (v *VariableDefinition) SetLabel(label string) error {
	if err := validateVariableLabel(label); err != nil {
		return err
	}
	v.label = label
	v.touch()
	return nil
}

func (v *VariableDefinition) SetType(t vo.VariableType) error {
	if !t.IsValid() {
		return fmt.Errorf("invalid variable type: %s", t)
	}
	v.variableType = t
	v.touch()
	return nil
}

func (v *VariableDefinition) SetDefaultValue(value string) {
	v.defaultValue = value
	v.touch()
}

func (v *VariableDefinition) SetRequired(required bool) {
	v.required = required
	v.touch()
}

func (v *VariableDefinition) SetOrder(order int) {
	v.order = order
	v.touch()
}

func (v *VariableDefinition) SetSelectOptions(options []string) {
	v.selectOptions = cleanOptions(options)
	v.touch()
}

// CopyTo clones the variable onto another template with a fresh ID.
func (v *VariableDefinition) CopyTo(templateID uint, shortIDGenerator func() (string, error)) (*VariableDefinition, error) {
	return NewVariableDefinition(VariableParams{
		TemplateID:    templateID,
		Name:          v.name,
		Label:         v.label,
		Type:          v.variableType,
		DefaultValue:  v.defaultValue,
		Required:      v.required,
		Order:         v.order,
		SelectOptions: v.selectOptions,
	}, shortIDGenerator)
}

func (v *VariableDefinition) touch() {
	v.updatedAt = time.Now()
}

// ParseSelectOptions splits a comma-separated option list, trimming entries
// and dropping empty ones.
func ParseSelectOptions(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return cleanOptions(strings.Split(raw, ","))
}

func cleanOptions(options []string) []string {
	var out []string
	for _, opt := range options {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

// SortVariables orders variables by display order, then by ID.
func SortVariables(vars []*VariableDefinition) {
	sort.SliceStable(vars, func(i, j int) bool {
		if vars[i].order != vars[j].order {
			return vars[i].order < vars[j].order
		}
		return vars[i].id < vars[j].id
	})
}
