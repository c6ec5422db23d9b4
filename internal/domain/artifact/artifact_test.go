package artifact

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedID(id string) func() (string, error) {
	return func() (string, error) { return id, nil }
}

func TestNewArtifact(t *testing.T) {
	a, err := NewArtifact("offer.pdf", MimeTypePDF, []byte("%PDF"), 7, fixedID("art_1"))
	require.NoError(t, err)

	assert.Equal(t, "art_1", a.SID())
	assert.Equal(t, "offer.pdf", a.Name())
	assert.Equal(t, MimeTypePDF, a.Mimetype())
	assert.Equal(t, 4, a.Size())
	assert.Equal(t, uint(7), a.TemplateID())
	assert.NotZero(t, a.CreatedAt())
}

func TestNewArtifact_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimetype string
		data     []byte
		gen      func() (string, error)
	}{
		{"blank name", " ", MimeTypePDF, []byte("x"), fixedID("a")},
		{"no mimetype", "a.pdf", "", []byte("x"), fixedID("a")},
		{"no data", "a.pdf", MimeTypePDF, nil, fixedID("a")},
		{"id failure", "a.pdf", MimeTypePDF, []byte("x"), func() (string, error) { return "", errors.New("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArtifact(tt.fileName, tt.mimetype, tt.data, 1, tt.gen)
			assert.Error(t, err)
		})
	}
}

func TestArtifact_SetID(t *testing.T) {
	a, err := NewArtifact("a.pdf", MimeTypePDF, []byte("x"), 1, fixedID("art_1"))
	require.NoError(t, err)

	assert.Error(t, a.SetID(0))
	require.NoError(t, a.SetID(3))
	assert.Equal(t, uint(3), a.ID())
	assert.Error(t, a.SetID(4))
}
