package document

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	vo "github.com/orris-inc/docforge/internal/domain/document/valueobjects"
)

// NoPreviewContent is shown instead of a preview when the template body is blank.
const NoPreviewContent = `<p style="color:#999;">No content to preview.</p>`

// DocumentAssembler turns a rendered HTML body into PDF bytes.
type DocumentAssembler interface {
	Assemble(ctx context.Context, bodyHTML string, branding Branding) ([]byte, error)
}

// ExportLine mirrors one variable definition with the value collected for it.
type ExportLine struct {
	Name          string
	Label         string
	Type          vo.VariableType
	Required      bool
	SelectOptions []string
	Value         string
}

// IsMissing reports whether a required line has only whitespace as its value.
func (l ExportLine) IsMissing() bool {
	return l.Required && strings.TrimSpace(l.Value) == ""
}

// ExportSession collects values for one export of a template. It holds a
// snapshot of the template body and variables taken at creation, so later
// edits to the template do not affect it.
type ExportSession struct {
	id           string
	templateID   uint
	templateSID  string
	templateName string
	body         string
	lines        []ExportLine
	extra        map[string]string
	createdAt    time.Time
}

// NewExportSession opens a session with one line per definition, in display
// order, each starting at the definition's default value.
func NewExportSession(id string, t *Template, definitions []*VariableDefinition) (*ExportSession, error) {
	if t == nil {
		return nil, ErrMissingTemplate
	}

	defs := append([]*VariableDefinition(nil), definitions...)
	SortVariables(defs)

	lines := make([]ExportLine, 0, len(defs))
	for _, d := range defs {
		lines = append(lines, ExportLine{
			Name:          d.Name(),
			Label:         d.Label(),
			Type:          d.Type(),
			Required:      d.Required(),
			SelectOptions: d.SelectOptions(),
			Value:         d.DefaultValue(),
		})
	}

	return &ExportSession{
		id:           id,
		templateID:   t.ID(),
		templateSID:  t.SID(),
		templateName: t.Name(),
		body:         t.Body(),
		lines:        lines,
		createdAt:    time.Now(),
	}, nil
}

// ReconstructExportSession rebuilds a stored session.
func ReconstructExportSession(
	id string,
	templateID uint,
	templateSID string,
	templateName string,
	body string,
	lines []ExportLine,
	extra map[string]string,
	createdAt time.Time,
) *ExportSession {
	return &ExportSession{
		id:           id,
		templateID:   templateID,
		templateSID:  templateSID,
		templateName: templateName,
		body:         body,
		lines:        copyLines(lines),
		extra:        copyValues(extra),
		createdAt:    createdAt,
	}
}

func (s *ExportSession) ID() string           { return s.id }
func (s *ExportSession) TemplateID() uint     { return s.templateID }
func (s *ExportSession) TemplateSID() string  { return s.templateSID }
func (s *ExportSession) TemplateName() string { return s.templateName }
func (s *ExportSession) Body() string         { return s.body }
func (s *ExportSession) CreatedAt() time.Time { return s.createdAt }

// Lines returns a copy of the session lines in display order.
func (s *ExportSession) Lines() []ExportLine {
	return copyLines(s.lines)
}

// Line returns the line for name. It fails with *UnknownVariableError when no
// line has that name and ErrNotSingle when several do.
func (s *ExportSession) Line(name string) (ExportLine, error) {
	idx, err := s.lineIndex(name)
	if err != nil {
		return ExportLine{}, err
	}
	return s.lines[idx], nil
}

func (s *ExportSession) lineIndex(name string) (int, error) {
	var matches []int
	for i := range s.lines {
		if s.lines[i].Name == name {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return -1, &UnknownVariableError{Ref: name}
	}
	return ExactlyOne(matches)
}

// SetLineValue updates the value of one line.
func (s *ExportSession) SetLineValue(name, value string) error {
	idx, err := s.lineIndex(name)
	if err != nil {
		return err
	}
	s.lines[idx].Value = value
	return nil
}

// SetLineValues updates several lines. Either every name resolves and all
// values are applied, or nothing changes.
func (s *ExportSession) SetLineValues(values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	indexes := make([]int, len(names))
	for i, name := range names {
		idx, err := s.lineIndex(name)
		if err != nil {
			return err
		}
		indexes[i] = idx
	}
	for i, name := range names {
		s.lines[indexes[i]].Value = values[name]
	}
	return nil
}

// SetExtraValues records values for placeholders that have no line. Names
// that belong to a line are rejected so a line stays the only source of its
// value.
func (s *ExportSession) SetExtraValues(values map[string]string) error {
	for name := range values {
		for _, l := range s.lines {
			if l.Name == name {
				return fmt.Errorf("%s has a line, set it with SetLineValue", name)
			}
		}
	}
	if s.extra == nil {
		s.extra = make(map[string]string, len(values))
	}
	for name, value := range values {
		s.extra[name] = value
	}
	return nil
}

// ExtraValues returns a copy of the values set with SetExtraValues.
func (s *ExportSession) ExtraValues() map[string]string {
	return copyValues(s.extra)
}

// Values maps every line name to its current value, plus any extra values.
func (s *ExportSession) Values() map[string]string {
	values := make(map[string]string, len(s.lines)+len(s.extra))
	for name, value := range s.extra {
		values[name] = value
	}
	for _, l := range s.lines {
		values[l.Name] = l.Value
	}
	return values
}

// Validate returns the labels of required lines without a value, in display
// order. An empty result means the session can be generated.
func (s *ExportSession) Validate() []string {
	var missing []string
	for _, l := range s.lines {
		if l.IsMissing() {
			missing = append(missing, l.Label)
		}
	}
	return missing
}

// Preview renders the body with the current values, or NoPreviewContent when
// the body is blank.
func (s *ExportSession) Preview() string {
	if strings.TrimSpace(s.body) == "" {
		return NoPreviewContent
	}
	return Render(s.body, s.Values())
}

// Render checks the session and returns the body with every value substituted.
func (s *ExportSession) Render() (string, error) {
	if strings.TrimSpace(s.body) == "" {
		return "", ErrEmptyContent
	}
	if missing := s.Validate(); len(missing) > 0 {
		return "", &RequiredFieldsMissingError{Labels: missing}
	}
	return Render(s.body, s.Values()), nil
}

// Generate renders the session and hands the result to assembler. Assembler
// failures are returned as *RenderingFailedError.
func (s *ExportSession) Generate(ctx context.Context, assembler DocumentAssembler, branding Branding) ([]byte, error) {
	rendered, err := s.Render()
	if err != nil {
		return nil, err
	}

	pdf, err := assembler.Assemble(ctx, rendered, branding)
	if err != nil {
		var rfe *RenderingFailedError
		if errors.As(err, &rfe) {
			return nil, err
		}
		return nil, &RenderingFailedError{Cause: err}
	}
	return pdf, nil
}

func copyValues(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func copyLines(lines []ExportLine) []ExportLine {
	out := make([]ExportLine, len(lines))
	for i, l := range lines {
		l.SelectOptions = append([]string(nil), l.SelectOptions...)
		out[i] = l
	}
	return out
}
