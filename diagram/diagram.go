// Package diagram implements the diagram renderers used by the xwl converters.
//
// Every renderer returns the generated SVG wrapped in a <div class="diagram"> element,
// so the page can style diagrams independently of the tool that produced them.
package diagram

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hesusruiz/xwl/xwl"
	"go.uber.org/zap"
)

func wrap(svg []byte) string {
	return `<div class="diagram">` + string(svg) + `</div>`
}

// Cache stores the output of another renderer in a directory, keyed by the hash
// of the diagram source. It is safe for concurrent use if the renderer is. A modification in the source diagram causes a new file
// to be generated. Stale files are never deleted.
type Cache struct {
	Renderer xwl.DiagramRenderer
	Dir      string
	// Prefix is prepended to the file names, normally the diagram type
	Prefix string
	Log    *zap.SugaredLogger
}

var _ xwl.DiagramRenderer = (*Cache)(nil)

// RenderDiagram returns the cached output for src, rendering it on a miss.
func (c *Cache) RenderDiagram(src string) (string, error) {
	hh := md5.Sum([]byte(src))
	fileName := filepath.Join(c.Dir, fmt.Sprintf("%s_%x.html", c.Prefix, hh))

	if body, err := os.ReadFile(fileName); err == nil {
		return string(body), nil
	}

	out, err := c.Renderer.RenderDiagram(src)
	if err != nil {
		return "", err
	}

	if err := c.store(fileName, out); err != nil {
		return "", err
	}
	if c.Log != nil {
		c.Log.Debugw("diagram cached", "file", fileName)
	}
	return out, nil
}

// store writes a temporary file and renames it into place, so concurrent
// readers of the same key see either no file or the complete one.
func (c *Cache) store(fileName string, out string) error {

	// Make sure the directory exists before attempting to write the file
	if err := os.MkdirAll(c.Dir, 0750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.Dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(out); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// Permissions for user:rw group:rw others:r
	if err := os.Chmod(tmp.Name(), 0664); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fileName)
}
