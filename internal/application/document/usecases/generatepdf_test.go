package usecases

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/docforge/internal/shared/errors"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

func TestGeneratePDFUseCase_Execute(t *testing.T) {
	f := newExportFixture("<p>{{name}} owes {{amount}} {{note}}</p>",
		testVariable(1, "name", 10, true), testVariable(2, "amount", 20, true), testVariable(3, "note", 30, false))
	uc := NewGeneratePDFUseCase(f.tplRepo, f.varRepo, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())

	result, err := uc.Execute(context.Background(), GeneratePDFCommand{
		TemplateID: "tpl_test1",
		Variables:  map[string]any{"name": "Jane", "amount": float64(42)},
		Filename:   "invoice",
		ReturnType: ReturnTypeBase64,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"<p>Jane owes 42 </p>"}, f.assembler.bodies)
	assert.Equal(t, "invoice.pdf", result.Filename)
	decoded, err := base64.StdEncoding.DecodeString(result.PDFBase64)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(decoded))
	assert.Equal(t, result.ArtifactID, f.tpl.LastArtifactID())
}

func TestGeneratePDFUseCase_Execute_DefaultsAndExtraValues(t *testing.T) {
	dept := testVariable(2, "dept", 20, false)
	dept.SetDefaultValue("Sales")
	f := newExportFixture("<p>{{name}} / {{dept}} / {{ref}} / {{other}}</p>", testVariable(1, "name", 10, true), dept)
	uc := NewGeneratePDFUseCase(f.tplRepo, f.varRepo, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())

	_, err := uc.Execute(context.Background(), GeneratePDFCommand{
		TemplateID: "tpl_test1",
		Variables:  map[string]any{"name": "Jane", "ref": "R-7"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"<p>Jane / Sales / R-7 / {{other}}</p>"}, f.assembler.bodies)
}

func TestGeneratePDFUseCase_Execute_RequiredDefaultCounts(t *testing.T) {
	region := testVariable(1, "region", 10, true)
	region.SetDefaultValue("EMEA")
	f := newExportFixture("<p>{{region}}</p>", region)
	uc := NewGeneratePDFUseCase(f.tplRepo, f.varRepo, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())

	_, err := uc.Execute(context.Background(), GeneratePDFCommand{TemplateID: "tpl_test1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"<p>EMEA</p>"}, f.assembler.bodies)
}

func TestGeneratePDFUseCase_Execute_MissingRequired(t *testing.T) {
	name := testVariable(1, "name", 10, true)
	require.NoError(t, name.SetLabel("Employee Name"))
	f := newExportFixture("<p>{{name}} {{amount}}</p>", name, testVariable(2, "amount", 20, true))
	uc := NewGeneratePDFUseCase(f.tplRepo, f.varRepo, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())

	_, err := uc.Execute(context.Background(), GeneratePDFCommand{
		TemplateID: "tpl_test1",
		Variables:  map[string]any{"name": "  ", "amount": nil},
	})

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, []string{"Employee Name", "Amount"}, appErr.Fields)
	assert.Equal(t, "Missing required variables: Employee Name, Amount", appErr.Message)
	assert.Empty(t, f.assembler.bodies)
}

func TestGeneratePDFUseCase_Execute_ReturnType(t *testing.T) {
	f := newExportFixture("<p>static</p>")
	uc := NewGeneratePDFUseCase(f.tplRepo, f.varRepo, newTestExportService(f.tplRepo, f.assembler, f.artifacts), logger.Nop())

	result, err := uc.Execute(context.Background(), GeneratePDFCommand{TemplateID: "tpl_test1"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.PDFBase64)
	assert.Equal(t, "Offer Letter.pdf", result.Filename)

	result, err = uc.Execute(context.Background(), GeneratePDFCommand{TemplateID: "tpl_test1", ReturnType: ReturnTypeURL})
	require.NoError(t, err)
	assert.Empty(t, result.PDFBase64)
	assert.NotEmpty(t, result.DownloadURL)

	_, err = uc.Execute(context.Background(), GeneratePDFCommand{TemplateID: "tpl_test1", ReturnType: "zip"})
	assert.True(t, errors.IsValidationError(err))
}

func TestStringifyValue(t *testing.T) {
	assert.Equal(t, "", stringifyValue(nil))
	assert.Equal(t, "x", stringifyValue("x"))
	assert.Equal(t, "3", stringifyValue(float64(3)))
	assert.Equal(t, "2.5", stringifyValue(2.5))
	assert.Equal(t, "true", stringifyValue(true))
}
