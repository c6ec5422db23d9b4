package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty text", "", nil},
		{"no placeholders", "<p>Hello</p>", nil},
		{"duplicates collapse", "{{x}} {{x}} {{x}}", []string{"x"}},
		{"invalid token skipped", "{{valid_name}} {{not-valid}}", []string{"valid_name"}},
		{"whitespace inside braces", "{{  spaced  }} and {{tight}}", []string{"spaced", "tight"}},
		{"first appearance order", "{{b}} {{a}} {{b}} {{c}}", []string{"b", "a", "c"}},
		{"case preserved", "{{Name}} {{name}}", []string{"Name", "name"}},
		{"unicode letters", "{{prénom}} {{名前}}", []string{"prénom", "名前"}},
		{"digits allowed", "{{line_1}}", []string{"line_1"}},
		{"single braces ignored", "{name} {{ }}", nil},
		{"inside markup", `<td style="x">{{amount}}</td>`, []string{"amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanPlaceholders(tt.text))
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		values map[string]string
		want   string
	}{
		{
			name:   "whitespace tolerance",
			body:   "<p>{{ name }}</p>",
			values: map[string]string{"name": "X"},
			want:   "<p>X</p>",
		},
		{
			name:   "every occurrence replaced",
			body:   "{{n}}-{{ n }}-{{n  }}",
			values: map[string]string{"n": "7"},
			want:   "7-7-7",
		},
		{
			name:   "unresolved passthrough",
			body:   "{{a}} {{b}}",
			values: map[string]string{"a": "1"},
			want:   "1 {{b}}",
		},
		{
			name:   "empty value blanks token",
			body:   "[{{a}}]",
			values: map[string]string{"a": ""},
			want:   "[]",
		},
		{
			name:   "values inserted literally",
			body:   "{{a}}",
			values: map[string]string{"a": "<b>$1 & ${x}</b>"},
			want:   "<b>$1 & ${x}</b>",
		},
		{
			name:   "inserted values not expanded again",
			body:   "{{a}} {{b}}",
			values: map[string]string{"a": "{{b}}", "b": "2"},
			want:   "{{b}} 2",
		},
		{
			name:   "prefix names stay distinct",
			body:   "{{name}} {{name_full}}",
			values: map[string]string{"name": "J", "name_full": "Jane Doe"},
			want:   "J Jane Doe",
		},
		{
			name:   "tokens the scanner rejects are left alone",
			body:   "{{a.b}} {{not-valid}} {{first name}}",
			values: map[string]string{"a.b": "dot", "not-valid": "X", "first name": "Y"},
			want:   "{{a.b}} {{not-valid}} {{first name}}",
		},
		{
			name:   "unicode names",
			body:   "{{ prénom }} {{名前}}",
			values: map[string]string{"prénom": "Élodie", "名前": "花子"},
			want:   "Élodie 花子",
		},
		{
			name:   "nil values",
			body:   "{{a}}",
			values: nil,
			want:   "{{a}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.body, tt.values))
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	values := map[string]string{"title": "Notice", "name": "Jane"}
	once := Render("<h1>{{title}}</h1><p>Dear {{name}}, {{ name }}</p>", values)

	assert.Equal(t, once, Render(once, values))
	assert.Equal(t, 2, strings.Count(once, "Jane"))
}

func TestInferLabel(t *testing.T) {
	tests := map[string]string{
		"employee_full_name": "Employee Full Name",
		"title":              "Title",
		"var1":               "Var1",
		"a1b":                "A1B",
		"LINE_2_total":       "Line 2 Total",
		"prénom":             "Prénom",
	}
	for name, want := range tests {
		assert.Equal(t, want, InferLabel(name), name)
	}
}

func TestRenderMatchesScan(t *testing.T) {
	body := "{{a}} {{not-valid}} {{ b_2 }} {{a.b}}"
	values := map[string]string{}
	for _, name := range ScanPlaceholders(body) {
		values[name] = "v"
	}
	values["not-valid"] = "v"
	values["a.b"] = "v"

	assert.Equal(t, "v {{not-valid}} v {{a.b}}", Render(body, values))
}

func TestIsPlaceholderName(t *testing.T) {
	for _, name := range []string{"a", "line_1", "prénom", "名前"} {
		assert.True(t, IsPlaceholderName(name), name)
	}
	for _, name := range []string{"", "not-valid", "first name", "a.b", "{{a}}", " a"} {
		assert.False(t, IsPlaceholderName(name), name)
	}
}

func TestPlaceholderTag(t *testing.T) {
	assert.Equal(t, "{{name}}", PlaceholderTag("name"))
	assert.Equal(t, "", PlaceholderTag(""))
}

func TestExactlyOne(t *testing.T) {
	v, err := ExactlyOne([]int{4})
	assert.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = ExactlyOne([]int{})
	assert.ErrorIs(t, err, ErrNotSingle)

	_, err = ExactlyOne([]int{1, 2})
	assert.ErrorIs(t, err, ErrNotSingle)
}
