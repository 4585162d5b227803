package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/hesusruiz/xwl/page"
	"github.com/hesusruiz/xwl/site"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// newLogger sets up the logging system
func newLogger(debug bool) *zap.SugaredLogger {
	var z *zap.Logger
	var err error

	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return z.Sugar()
}

// loadConfig reads the configuration file named in the command line, if any
func loadConfig(c *cli.Context) (site.Config, error) {
	cfg, err := site.LoadConfig(c.String("config"))
	if err != nil {
		return site.Config{}, err
	}
	if c.IsSet("pretty") {
		cfg.Pretty = c.Bool("pretty")
	}
	if c.IsSet("tree") && c.Bool("tree") {
		cfg.Pipeline = site.PipelineTree
	}
	cfg.DryRun = c.Bool("dryrun")
	return cfg, cfg.Validate()
}

// converter converts single files into complete pages
type converter struct {
	cfg  site.Config
	tmpl *page.Template
	log  *zap.SugaredLogger
}

func newConverter(cfg site.Config, log *zap.SugaredLogger) (*converter, error) {
	tmpl, err := page.Load(cfg.Template)
	if err != nil {
		return nil, err
	}
	return &converter{cfg: cfg, tmpl: tmpl, log: log}, nil
}

// convertFile converts inputFileName and writes the page to outputFileName, unless in dry run mode
func (cv *converter) convertFile(inputFileName string, outputFileName string) error {
	src, err := os.ReadFile(inputFileName)
	if err != nil {
		return err
	}

	ext, err := site.NewExternals(cv.cfg, cv.log)
	if err != nil {
		return err
	}

	content, info, err := site.Convert(string(src), inputFileName, cv.cfg, ext, cv.log)
	if err != nil {
		return err
	}
	cv.log.Debugw("converted", "file", inputFileName, "title", info.Title, "draft", info.Draft)

	// Do nothing if flag dryrun was specified
	if cv.cfg.DryRun {
		return nil
	}
	return os.WriteFile(outputFileName, cv.tmpl.Fill(site.PageContent(content, cv.cfg), info), 0664)
}

// processWatch checks periodically if an input file (inputFileName) has been modified, and if so
// it converts the file and writes the result to the output file (outputFileName).
// Conversion errors are reported and the watch goes on, so the author can fix the source.
func (cv *converter) processWatch(inputFileName string, outputFileName string) error {
	var oldTimestamp time.Time

	// Loop forever
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(inputFileName)
		if err != nil {
			return err
		}
		currentTimestamp := info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if oldTimestamp.Before(currentTimestamp) {
			oldTimestamp = currentTimestamp
			fmt.Println("************Processing*************")
			if err := cv.convertFile(inputFileName, outputFileName); err != nil {
				red.Fprintln(os.Stderr, "✗", err)
			} else {
				green.Println("✓", outputFileName)
			}
		}

		// Check again in one second
		time.Sleep(1 * time.Second)
	}
}

// outputNameFor replaces the extension of the input file with .html
func outputNameFor(inputFileName string) string {
	ext := filepath.Ext(inputFileName)
	if len(ext) == 0 {
		return inputFileName + ".html"
	}
	return strings.TrimSuffix(inputFileName, ext) + ".html"
}

// convert is the entry point of the convert command
func convert(c *cli.Context) error {
	log := newLogger(c.Bool("debug"))
	defer log.Sync()

	if !c.Args().Present() {
		return cli.Exit("no input file provided", 1)
	}
	inputFileName := c.Args().First()

	// Output file name command line parameter
	outputFileName := c.String("output")
	if len(outputFileName) == 0 {
		outputFileName = outputNameFor(inputFileName)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cv, err := newConverter(cfg, log)
	if err != nil {
		return err
	}

	// Print a message
	if !cfg.DryRun {
		fmt.Printf("processing %v and generating %v\n", inputFileName, outputFileName)
	} else {
		fmt.Printf("dry run: processing %v without writing output\n", inputFileName)
	}

	// This is useful for development.
	// If the user specified to watch, loop forever processing the input file when modified
	if c.Bool("watch") {
		return cv.processWatch(inputFileName, outputFileName)
	}

	return cv.convertFile(inputFileName, outputFileName)
}

// build is the entry point of the build command
func build(c *cli.Context) error {
	log := newLogger(c.Bool("debug"))
	defer log.Sync()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("posts") {
		cfg.PostsDir = c.String("posts")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	ext, err := site.NewExternals(cfg, log)
	if err != nil {
		return err
	}
	b, err := site.NewBuilder(cfg, ext, log)
	if err != nil {
		return err
	}

	result, buildErr := b.Build(context.Background())
	if result == nil {
		return buildErr
	}

	for _, p := range result.Posts {
		green.Printf("✓ %s (%s)\n", p.Slug, p.CreatedAt)
	}
	for _, d := range result.Drafts {
		yellow.Printf("- %s (draft)\n", d)
	}
	for _, err := range multierr.Errors(buildErr) {
		red.Printf("✗ %v\n", err)
	}

	if buildErr != nil {
		return cli.Exit(fmt.Sprintf("%d posts failed", len(multierr.Errors(buildErr))), 1)
	}
	if !cfg.DryRun {
		fmt.Printf("%d posts written to %s\n", len(result.Posts), cfg.OutputDir)
	}
	return nil
}

func main() {

	app := &cli.App{
		Name:     "xwl",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage: "convert XWL documents to HTML and build a site of posts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read the configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "convert a single XWL document into an HTML page",
				ArgsUsage: "INPUT_FILE",
				Action:    convert,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write html to `FILE` (default is input file name with extension .html)",
					},
					&cli.BoolFlag{
						Name:    "dryrun",
						Aliases: []string{"n"},
						Usage:   "do not generate output file, just process input file",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "watch the file for changes",
					},
					&cli.BoolFlag{
						Name:    "tree",
						Aliases: []string{"t"},
						Usage:   "use the tree pipeline instead of the event pipeline",
					},
					&cli.BoolFlag{
						Name:    "pretty",
						Aliases: []string{"p"},
						Usage:   "pretty print the generated html",
					},
				},
			},
			{
				Name:   "build",
				Usage:  "convert every post of a directory and write the post index",
				Action: build,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "posts",
						Usage: "read the posts from `DIR`",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the site to `DIR`",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "convert up to `N` posts in parallel",
					},
					&cli.BoolFlag{
						Name:    "dryrun",
						Aliases: []string{"n"},
						Usage:   "convert the posts without writing anything",
					},
					&cli.BoolFlag{
						Name:    "pretty",
						Aliases: []string{"p"},
						Usage:   "pretty print the generated html",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		red.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
