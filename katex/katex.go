// Package katex typesets TeX math by running the KaTeX command line tool.
package katex

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hesusruiz/xwl/xwl"
)

// DefaultCommand is the KaTeX CLI, installed with npm as katex.
const DefaultCommand = "katex"

// KaTeX implements xwl.MathRenderer with one process per formula, so it is
// safe for concurrent use.
type KaTeX struct {
	Command string
	// Format is passed with --format when not empty: html, mathml or htmlAndMathml
	Format string
}

var _ xwl.MathRenderer = (*KaTeX)(nil)

// New returns a renderer running command, or the default command when empty.
func New(command string) *KaTeX {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &KaTeX{Command: command}
}

// RenderMath feeds src to the tool on stdin and returns what it writes to stdout.
func (k *KaTeX) RenderMath(src string, display bool) (string, error) {
	var args []string
	if display {
		args = append(args, "--display-mode")
	}
	if len(k.Format) > 0 {
		args = append(args, "--format", k.Format)
	}

	cmd := exec.Command(k.Command, args...)
	cmd.Stdin = strings.NewReader(src)
	var out bytes.Buffer
	var cmderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &cmderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running command: %s %s: %w: %s", k.Command, strings.Join(args, " "), err, bytes.TrimSpace(cmderr.Bytes()))
	}
	return strings.TrimSpace(out.String()), nil
}
