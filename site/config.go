// Package site builds a static site from a directory of XWL posts.
package site

import (
	"fmt"

	"github.com/hesusruiz/vcutils/yaml"
)

// Pipelines that can convert a document.
const (
	PipelineEvents = "events"
	PipelineTree   = "tree"
)

// Diagram renderers that can be selected in the configuration.
const (
	DiagramMermaid = "mermaid"
	DiagramD2      = "d2"
	DiagramKroki   = "kroki"
)

// Config holds the settings of a build. The zero value is not usable, start from DefaultConfig.
type Config struct {
	PostsDir  string
	OutputDir string
	// Template is the page template file, empty for the built-in one
	Template string
	Workers  int
	Pipeline string
	Pretty   bool
	DryRun   bool

	CodeTheme      string
	Diagram        string
	DiagramType    string
	DiagramCache   string
	MermaidCommand string
	KatexCommand   string
	KrokiURL       string
}

// DefaultConfig returns the settings used for the keys missing in a configuration file.
func DefaultConfig() Config {
	return Config{
		PostsDir:       "posts",
		OutputDir:      "site/posts",
		Workers:        4,
		Pipeline:       PipelineEvents,
		CodeTheme:      "monokai",
		Diagram:        DiagramMermaid,
		DiagramType:    "mermaid",
		MermaidCommand: "mmdc",
		KatexCommand:   "katex",
		KrokiURL:       "https://kroki.io",
	}
}

// LoadConfig reads a YAML configuration file. An empty name returns the defaults.
func LoadConfig(fileName string) (Config, error) {
	if len(fileName) == 0 {
		return DefaultConfig(), nil
	}
	cfg, err := yaml.ParseYamlFile(fileName)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", fileName, err)
	}
	return fromYAML(cfg)
}

// ParseConfig parses the contents of a YAML configuration file.
func ParseConfig(src string) (Config, error) {
	cfg, err := yaml.ParseYaml(src)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return fromYAML(cfg)
}

func fromYAML(cfg *yaml.YAML) (Config, error) {
	d := DefaultConfig()
	c := Config{
		PostsDir:  cfg.String("postsDir", d.PostsDir),
		OutputDir: cfg.String("outputDir", d.OutputDir),
		Template:  cfg.String("template", d.Template),
		Workers:   cfg.Int("workers", d.Workers),
		Pipeline:  cfg.String("pipeline", d.Pipeline),
		Pretty:    cfg.Bool("pretty"),

		CodeTheme:      cfg.String("xwl.codeTheme", d.CodeTheme),
		Diagram:        cfg.String("xwl.diagram", d.Diagram),
		DiagramType:    cfg.String("xwl.diagramType", d.DiagramType),
		DiagramCache:   cfg.String("xwl.diagramCache", d.DiagramCache),
		MermaidCommand: cfg.String("xwl.mermaidCommand", d.MermaidCommand),
		KatexCommand:   cfg.String("xwl.katexCommand", d.KatexCommand),
		KrokiURL:       cfg.String("xwl.krokiURL", d.KrokiURL),
	}
	return c, c.Validate()
}

// Validate checks the values that select an implementation.
func (c Config) Validate() error {
	switch c.Pipeline {
	case PipelineEvents, PipelineTree:
	default:
		return fmt.Errorf("unknown pipeline %q, expected %s or %s", c.Pipeline, PipelineEvents, PipelineTree)
	}
	switch c.Diagram {
	case DiagramMermaid, DiagramD2, DiagramKroki:
	default:
		return fmt.Errorf("unknown diagram renderer %q", c.Diagram)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
