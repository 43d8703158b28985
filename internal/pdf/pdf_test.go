package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/pdf"
)

func TestRelationship(t *testing.T) {
	tests := []struct {
		profile model.Profile
		want    string
	}{
		{model.ProfileMinimum, "Data"},
		{model.ProfileBasicWL, "Data"},
		{model.ProfileBasic, "Alternative"},
		{model.ProfileEN16931, "Alternative"},
	}
	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, pdf.Relationship(tt.profile))
		})
	}
}

func TestNoAttachmentError(t *testing.T) {
	err := &pdf.NoAttachmentError{Path: "invoice.pdf"}
	assert.Equal(t, "invoice.pdf: no factur-x.xml attachment found", err.Error())
}

func TestExtractMissingFile(t *testing.T) {
	_, err := pdf.ExtractXML("does-not-exist.pdf")
	require.Error(t, err)
}
