// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdiddy/pitch-engine/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownProvider converts decks by piping them through the markitdown
// container image. It depends on a container.Runtime (docker or podman)
// injected at construction time.
type MarkitdownProvider struct {
	runtime *container.Runtime
}

// NewMarkitdownProvider creates a provider that uses the given runtime. It
// verifies that the markitdown image exists locally before returning.
func NewMarkitdownProvider(rt *container.Runtime) (*MarkitdownProvider, error) {
	if err := rt.HasImage(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownProvider{runtime: rt}, nil
}

// Text pipes the deck through the markitdown container and returns the
// converted text. Empty output is not an error here; it means the deck has
// no text layer.
func (m *MarkitdownProvider) Text(pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening deck %s: %w", pdfPath, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := m.runtime.Pipe(imageMarkitdown, f, &out); err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", pdfPath, err)
	}
	return out.String(), nil
}
