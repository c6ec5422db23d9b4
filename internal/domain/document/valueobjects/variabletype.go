package valueobjects

import "fmt"

// VariableType tells the UI how to collect a value. The export pipeline
// itself treats every value as a string.
type VariableType string

const (
	VariableTypeShortText    VariableType = "char"
	VariableTypeLongText     VariableType = "text"
	VariableTypeInteger      VariableType = "integer"
	VariableTypeDecimal      VariableType = "float"
	VariableTypeDate         VariableType = "date"
	VariableTypeSingleSelect VariableType = "selection"
)

// DefaultVariableType is assigned when no type is given.
const DefaultVariableType = VariableTypeShortText

var validVariableTypes = map[VariableType]bool{
	VariableTypeShortText:    true,
	VariableTypeLongText:     true,
	VariableTypeInteger:      true,
	VariableTypeDecimal:      true,
	VariableTypeDate:         true,
	VariableTypeSingleSelect: true,
}

func (t VariableType) String() string {
	return string(t)
}

func (t VariableType) IsValid() bool {
	return validVariableTypes[t]
}

// HasOptions reports whether select options are meaningful for this type.
func (t VariableType) HasOptions() bool {
	return t == VariableTypeSingleSelect
}

// NewVariableType parses s, mapping the empty string to DefaultVariableType.
func NewVariableType(s string) (VariableType, error) {
	if s == "" {
		return DefaultVariableType, nil
	}
	t := VariableType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid variable type: %s", s)
	}
	return t, nil
}
