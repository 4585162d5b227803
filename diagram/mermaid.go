package diagram

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/hesusruiz/xwl/xwl"
)

// DefaultMermaidCommand is the mermaid CLI, installed with npm as @mermaid-js/mermaid-cli.
const DefaultMermaidCommand = "mmdc"

// Mermaid renders mermaid diagrams by running the mermaid CLI on temporary files.
type Mermaid struct {
	Command string
}

var _ xwl.DiagramRenderer = (*Mermaid)(nil)

// NewMermaid returns a Mermaid renderer running command, or the default command when empty.
func NewMermaid(command string) *Mermaid {
	if len(command) == 0 {
		command = DefaultMermaidCommand
	}
	return &Mermaid{Command: command}
}

// RenderDiagram writes src to a temporary file, runs the CLI on it and returns the SVG.
// The temporary files are removed when the call returns, whatever the outcome.
func (m *Mermaid) RenderDiagram(src string) (string, error) {
	in, err := os.CreateTemp("", "xwl-*.mmd")
	if err != nil {
		return "", err
	}
	inName := in.Name()
	defer os.Remove(inName)

	if _, err := in.WriteString(src); err != nil {
		in.Close()
		return "", err
	}
	if err := in.Close(); err != nil {
		return "", err
	}

	outName := inName + ".svg"
	defer os.Remove(outName)

	cmd := exec.Command(m.Command, "--quiet", "-i", inName, "-o", outName)
	var cmderr bytes.Buffer
	cmd.Stderr = &cmderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running command: %s: %w: %s", m.Command, err, bytes.TrimSpace(cmderr.Bytes()))
	}

	body, err := os.ReadFile(outName)
	if err != nil {
		return "", fmt.Errorf("reading output of %s: %w", m.Command, err)
	}
	return wrap(body), nil
}
