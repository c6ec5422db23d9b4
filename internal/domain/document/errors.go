package document

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyContent is returned when scanning or generating from a blank body.
	ErrEmptyContent = errors.New("template content is empty")

	// ErrMissingTemplate is returned when an export session is opened without a template.
	ErrMissingTemplate = errors.New("export session requires a template")

	// ErrNotSingle is returned by single-item accessors that matched zero or several items.
	ErrNotSingle = errors.New("expected exactly one item")
)

// RequiredFieldsMissingError lists, in display order, the labels of required
// lines that have no value.
type RequiredFieldsMissingError struct {
	Labels []string
}

func (e *RequiredFieldsMissingError) Error() string {
	return "Please fill in the required fields: " + strings.Join(e.Labels, ", ")
}

// UnknownTemplateError is returned when a template reference does not resolve.
type UnknownTemplateError struct {
	ID string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("template %s does not exist", e.ID)
}

// UnknownVariableError is returned when a variable reference (ID or name)
// does not resolve on a template or session.
type UnknownVariableError struct {
	Ref string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("variable %q does not exist", e.Ref)
}

// DuplicateVariableNameError is returned when a template already owns a
// variable with the same name.
type DuplicateVariableNameError struct {
	TemplateID string
	Name       string
}

func (e *DuplicateVariableNameError) Error() string {
	return fmt.Sprintf("variable %q already exists on template %s", e.Name, e.TemplateID)
}

// RenderingFailedError wraps any failure of the HTML to PDF rasterizer.
type RenderingFailedError struct {
	Cause error
}

func (e *RenderingFailedError) Error() string {
	return fmt.Sprintf("pdf rendering failed: %v", e.Cause)
}

func (e *RenderingFailedError) Unwrap() error {
	return e.Cause
}
