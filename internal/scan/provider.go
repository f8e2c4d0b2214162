// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"bytes"
	"fmt"
	"os/exec"
)

// TextProvider yields the decoded text for one deck. An empty string with a
// nil error signals a missing text layer (e.g. an image-only deck); the
// scan stage records that as a document-level failure, not an error.
type TextProvider interface {
	Text(pdfPath string) (string, error)
}

// PdftotextProvider extracts the text layer with the poppler pdftotext
// binary. Image-only pages yield no output, which surfaces downstream as
// an extraction failure.
type PdftotextProvider struct {
	bin string
	run func(name string, args ...string) ([]byte, error)
}

// NewPdftotextProvider creates a provider using the given binary name or
// path. An empty bin falls back to "pdftotext" on PATH.
func NewPdftotextProvider(bin string) *PdftotextProvider {
	if bin == "" {
		bin = "pdftotext"
	}
	return &PdftotextProvider{bin: bin, run: runCommand}
}

func runCommand(name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Text runs pdftotext with layout preserved and UTF-8 output, writing to
// stdout instead of a sidecar file.
func (p *PdftotextProvider) Text(pdfPath string) (string, error) {
	out, err := p.run(p.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", pdfPath, "-")
	if err != nil {
		return "", fmt.Errorf("running %s on %s: %w", p.bin, pdfPath, err)
	}
	return string(out), nil
}
