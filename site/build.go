package site

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hesusruiz/xwl/htmlfmt"
	"github.com/hesusruiz/xwl/page"
	"github.com/hesusruiz/xwl/xwl"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// SourceExt is the extension of the post sources.
const SourceExt = ".xwl"

// Post is an entry of the post index.
type Post struct {
	Title      string   `yaml:"title"`
	Slug       string   `yaml:"slug"`
	CreatedAt  string   `yaml:"createdAt"`
	ModifiedAt string   `yaml:"modifiedAt"`
	Tags       []string `yaml:"tags,omitempty"`
}

// Result summarizes a build.
type Result struct {
	// Posts are sorted by creation date, newest first
	Posts []Post
	// Drafts are the source files skipped because they are drafts
	Drafts []string
}

// Builder converts every post of a directory into a page of the output directory.
type Builder struct {
	cfg  Config
	ext  xwl.Externals
	tmpl *page.Template
	log  *zap.SugaredLogger
}

// NewBuilder returns a Builder, loading the page template of the configuration.
func NewBuilder(cfg Config, ext xwl.Externals, log *zap.SugaredLogger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := page.Load(cfg.Template)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Builder{cfg: cfg, ext: ext, tmpl: tmpl, log: log}, nil
}

// Build converts all the posts in parallel and writes the post index.
//
// A failing document does not stop the others: all the failures are returned
// together, and the index lists the posts that were built.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	files, err := filepath.Glob(filepath.Join(b.cfg.PostsDir, "*"+SourceExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	if !b.cfg.DryRun {
		if err := os.MkdirAll(b.cfg.OutputDir, 0750); err != nil {
			return nil, err
		}
	}

	var (
		mu     sync.Mutex
		errs   error
		result Result
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			post, draft, err := b.buildPost(file)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				b.log.Errorw("building post", "file", file, "error", err)
				errs = multierr.Append(errs, err)
			case draft:
				b.log.Infow("skipping draft", "file", file)
				result.Drafts = append(result.Drafts, file)
			default:
				b.log.Infow("post built", "file", file, "slug", post.Slug)
				result.Posts = append(result.Posts, post)
			}
			return nil
		})
	}

	// Only a cancelled context reaches here as an error
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortPosts(result.Posts)
	sort.Strings(result.Drafts)

	if err := b.writeIndex(result.Posts); err != nil {
		errs = multierr.Append(errs, err)
	}
	return &result, errs
}

// buildPost converts one file and writes its page, unless it is a draft.
func (b *Builder) buildPost(file string) (Post, bool, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return Post{}, false, err
	}

	content, info, err := Convert(string(src), file, b.cfg, b.ext, b.log)
	if err != nil {
		return Post{}, false, fmt.Errorf("converting %s: %w", file, err)
	}
	if info.Draft {
		return Post{}, true, nil
	}

	post := Post{
		Title:      info.Title,
		Slug:       Slug(file),
		CreatedAt:  info.CreatedAt,
		ModifiedAt: info.ModifiedAt,
		Tags:       info.Tags,
	}

	if b.cfg.DryRun {
		return post, false, nil
	}
	out := b.tmpl.Fill(PageContent(content, b.cfg), info)
	if err := os.WriteFile(filepath.Join(b.cfg.OutputDir, post.Slug+".html"), out, 0664); err != nil {
		return Post{}, false, err
	}
	return post, false, nil
}

func (b *Builder) writeIndex(posts []Post) error {
	if b.cfg.DryRun {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("<ul class=\"posts\">\n")
	for _, p := range posts {
		fmt.Fprintf(&sb, "<li><a href=\"%s.html\">%s</a> <time>%s</time></li>\n",
			p.Slug, html.EscapeString(p.Title), html.EscapeString(p.CreatedAt))
	}
	sb.WriteString("</ul>")

	info := xwl.DefaultInfo()
	info.Kind = "index"
	info.Title = "Posts"
	if err := os.WriteFile(filepath.Join(b.cfg.OutputDir, "index.html"), b.tmpl.Fill(sb.String(), info), 0664); err != nil {
		return err
	}

	index, err := yaml.Marshal(struct {
		Posts []Post `yaml:"posts"`
	}{Posts: posts})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.cfg.OutputDir, "index.yaml"), index, 0664)
}

// Convert converts one document with the pipeline of the configuration.
// The tree pipeline does not read metadata, so it always returns the default Info.
func Convert(src string, fileName string, cfg Config, ext xwl.Externals, log *zap.SugaredLogger) (string, xwl.Info, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	opts := []xwl.Option{
		xwl.WithFileName(fileName),
		xwl.WithCodeTheme(cfg.CodeTheme),
		xwl.WithLogger(log),
	}

	var content string
	info := xwl.DefaultInfo()
	var err error

	switch cfg.Pipeline {
	case PipelineTree:
		content, err = xwl.RenderTree(src, ext, opts...)
	default:
		content, info, err = xwl.Convert(src, ext, opts...)
	}
	if err != nil {
		return "", info, err
	}

	if cfg.Pretty {
		pretty, err := htmlfmt.Format(content)
		if err != nil {
			log.Warnw("pretty printing failed, keeping the output as is", "file", fileName, "error", err)
		} else {
			content = pretty
		}
	}
	return content, info, nil
}

// PageContent returns what goes into the page template for a converted document.
// The event pipeline output is wrapped in an <article> element, while the tree
// pipeline already renders the root article tag itself.
func PageContent(content string, cfg Config) string {
	if cfg.Pipeline == PipelineTree {
		return content
	}
	return page.Article(content)
}

// Slug returns the name of the page generated for a source file.
func Slug(file string) string {
	return strings.TrimSuffix(filepath.Base(file), SourceExt)
}

// SortPosts sorts posts by creation date, newest first. Dates that are not
// in the YYYY-MM-DD form sort as text after the valid ones.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, erri := time.Parse(time.DateOnly, posts[i].CreatedAt)
		tj, errj := time.Parse(time.DateOnly, posts[j].CreatedAt)
		switch {
		case erri == nil && errj == nil:
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			if posts[i].CreatedAt != posts[j].CreatedAt {
				return posts[i].CreatedAt > posts[j].CreatedAt
			}
		}
		return posts[i].Slug < posts[j].Slug
	})
}
