package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docr/internal/validate"
)

func TestValidate_AcceptsSupportedImage(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	verdict := v.Validate("scan.png", "image/png")

	assert.True(t, verdict.Accepted)
	assert.Empty(t, verdict.Reason)
}

func TestValidate_AcceptsPDF(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	verdict := v.Validate("contract.pdf", "application/pdf")

	assert.True(t, verdict.Accepted)
}

func TestValidate_RejectsUnknownExtension(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	// The extension check fires regardless of the declared content type.
	verdict := v.Validate("report.exe", "application/pdf")

	assert.False(t, verdict.Accepted)
	assert.Equal(t, "unsupported file type: .exe", verdict.Reason)
}

func TestValidate_RejectsMissingExtension(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	verdict := v.Validate("README", "application/pdf")

	assert.False(t, verdict.Accepted)
	assert.Contains(t, verdict.Reason, "no extension")
}

func TestValidate_RejectsContentTypeWhenEnabled(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	// .docx is on the extension allowlist but its declared type is neither
	// application/pdf nor an image type.
	verdict := v.Validate("notes.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	assert.False(t, verdict.Accepted)
	assert.Contains(t, verdict.Reason, "unsupported content type")
}

func TestValidate_ContentTypeCheckDisabled(t *testing.T) {
	v := validate.New(validate.Config{CheckContentType: false})

	verdict := v.Validate("notes.docx", "application/octet-stream")

	assert.True(t, verdict.Accepted)
}

func TestValidate_ImagePrefixMatchesAnySubtype(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	assert.True(t, v.Validate("photo.jpg", "image/jpeg").Accepted)
	assert.True(t, v.Validate("photo.png", "image/x-custom").Accepted)
}

func TestValidate_IsPure(t *testing.T) {
	v := validate.New(validate.DefaultConfig())

	first := v.Validate("report.exe", "application/pdf")
	second := v.Validate("report.exe", "application/pdf")

	assert.Equal(t, first, second)
	// A rejection must not poison subsequent calls.
	assert.True(t, v.Validate("scan.png", "image/png").Accepted)
}
