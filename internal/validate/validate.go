// Package validate classifies inbound files as supported or unsupported
// before any extraction work is attempted. It is pure: no I/O, no state
// beyond the configured policy.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"docr/internal/domain"
)

// Verdict is the result of validating a single file.
type Verdict struct {
	Accepted bool
	Reason   string
}

// Config controls which checks are applied. Historically some deployments
// validated by extension only and others by declared content type; both
// checks are available and independently toggleable.
type Config struct {
	Extensions       map[string]domain.FileType
	CheckContentType bool
}

// DefaultConfig returns the standard policy: extension allowlist plus
// declared content-type check.
func DefaultConfig() Config {
	return Config{
		Extensions:       domain.AllowedExtensions,
		CheckContentType: true,
	}
}

// Validator checks file names and declared content types against the
// configured policy.
type Validator struct {
	cfg Config
}

// New creates a Validator with the given policy.
func New(cfg Config) *Validator {
	if cfg.Extensions == nil {
		cfg.Extensions = domain.AllowedExtensions
	}
	return &Validator{cfg: cfg}
}

// Validate classifies a file by name and declared content type. The
// extension check always applies; the content-type check applies only when
// enabled. The two produce distinct rejection reasons.
func (v *Validator) Validate(fileName, declaredContentType string) Verdict {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		return Verdict{Reason: fmt.Sprintf("file %q has no extension", fileName)}
	}
	if _, ok := v.cfg.Extensions[ext]; !ok {
		return Verdict{Reason: fmt.Sprintf("unsupported file type: .%s", ext)}
	}

	if v.cfg.CheckContentType && !contentTypeAllowed(declaredContentType) {
		return Verdict{Reason: fmt.Sprintf("unsupported content type: %q", declaredContentType)}
	}

	return Verdict{Accepted: true}
}

// contentTypeAllowed mirrors the declared-type policy used by the batch
// OCR surface: PDFs or anything image-prefixed.
func contentTypeAllowed(contentType string) bool {
	if contentType == "" {
		return false
	}
	return contentType == "application/pdf" || strings.HasPrefix(contentType, "image")
}
