package diagram

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hesusruiz/xwl/xwl"
)

// DefaultKrokiURL is the public Kroki service.
const DefaultKrokiURL = "https://kroki.io"

// Kroki renders diagrams by posting them to a Kroki server, which supports
// many diagram languages (mermaid, plantuml, graphviz, ...).
type Kroki struct {
	URL         string
	DiagramType string
	Client      *http.Client
}

var _ xwl.DiagramRenderer = (*Kroki)(nil)

// NewKroki returns a Kroki renderer for diagramType. An empty url selects the public service.
func NewKroki(url string, diagramType string) *Kroki {
	if len(url) == 0 {
		url = DefaultKrokiURL
	}
	return &Kroki{
		URL:         strings.TrimSuffix(url, "/"),
		DiagramType: diagramType,
		Client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// RenderDiagram sends src to the server and returns the SVG it replies with.
func (k *Kroki) RenderDiagram(src string) (string, error) {

	// Build the url
	krokiURL := k.URL + "/" + k.DiagramType + "/svg"

	resp, err := k.Client.Post(krokiURL, "text/plain", strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("calling Kroki: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body from Kroki: %w", err)
	}

	// Check the HTTP Status code in the reply
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kroki server responded with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return wrap(body), nil
}
