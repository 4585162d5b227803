package xwl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// HandlerFunc handles one tag event. A non-empty result is emitted as an output fragment.
type HandlerFunc func(cv *Converter, ev Event, st *ConversionState) (string, error)

// TagHandler holds the optional handlers for the events of one tag name.
type TagHandler struct {
	OnStart HandlerFunc
	OnEnd   HandlerFunc
	OnEmpty HandlerFunc
}

// Converter streams the events of a document through the tag handlers,
// producing HTML fragments and the document metadata.
type Converter struct {
	z        *Tokenizer
	state    *ConversionState
	ext      Externals
	handlers map[string]TagHandler

	fileName  string
	codeTheme string
	log       *zap.SugaredLogger
}

// Option configures a Converter or a TreeRenderer.
type Option func(*options)

type options struct {
	log       *zap.SugaredLogger
	fileName  string
	codeTheme string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) { o.log = log }
}

// WithFileName sets the name reported in syntax errors.
func WithFileName(name string) Option {
	return func(o *options) { o.fileName = name }
}

// WithCodeTheme sets the highlighting theme for listings and code.
func WithCodeTheme(theme string) Option {
	return func(o *options) { o.codeTheme = theme }
}

func buildOptions(opts []Option) options {
	o := options{
		log:       zap.NewNop().Sugar(),
		codeTheme: "monokai",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewConverter returns a Converter for src with a fresh conversion state.
func NewConverter(src string, ext Externals, opts ...Option) *Converter {
	o := buildOptions(opts)
	return &Converter{
		z:         NewTokenizer(src),
		state:     NewConversionState(),
		ext:       ext,
		handlers:  defaultHandlers,
		fileName:  o.fileName,
		codeTheme: o.codeTheme,
		log:       o.log,
	}
}

// Convert converts a whole document, returning its content and metadata.
func Convert(src string, ext Externals, opts ...Option) (string, Info, error) {
	return NewConverter(src, ext, opts...).ConvertAll()
}

// State returns the conversion state, mainly to read the metadata.
func (cv *Converter) State() *ConversionState {
	return cv.state
}

// ConvertAll converts the remaining events and joins the fragments with newlines.
func (cv *Converter) ConvertAll() (string, Info, error) {
	var br ByteRenderer
	for {
		s, err := cv.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", cv.state.Info, err
		}
		if br.Len() > 0 {
			br.Render("\n")
		}
		br.Render(s)
	}
	return br.String(), cv.state.Info, nil
}

// Next returns the next non-empty output fragment, or io.EOF at the end of the document.
func (cv *Converter) Next() (string, error) {
	for {
		ev, err := cv.z.Next()
		if err != nil {
			if err != io.EOF {
				var se *SyntaxError
				if errors.As(err, &se) && len(se.Filename) == 0 {
					se.Filename = cv.fileName
				}
			}
			return "", err
		}

		s, err := cv.convertEvent(ev)
		if err != nil {
			return "", err
		}
		if len(s) > 0 {
			return s, nil
		}
	}
}

func (cv *Converter) convertEvent(ev Event) (string, error) {
	switch ev.Type {
	case StartTagEvent, EndTagEvent, EmptyElementTagEvent:
		fn := cv.handlerFor(ev)
		if fn == nil {
			return "", nil
		}
		return fn(cv, ev, cv.state)

	case CharactersEvent, CDataEvent:
		if cv.state.Capturing() {
			cv.state.AppendCaptured(ev.Data)
			return "", nil
		}
		return ev.Data, nil
	}

	// Comments produce no output
	return "", nil
}

func (cv *Converter) handlerFor(ev Event) HandlerFunc {
	h, ok := cv.handlers[ev.Name]
	if !ok {
		cv.log.Debugw("no handler for tag", "tag", ev.Name, "event", ev.Type)
		return nil
	}
	switch ev.Type {
	case StartTagEvent:
		return h.OnStart
	case EndTagEvent:
		return h.OnEnd
	case EmptyElementTagEvent:
		return h.OnEmpty
	}
	return nil
}

var defaultHandlers map[string]TagHandler

func init() {
	defaultHandlers = map[string]TagHandler{
		"article": {
			OnStart: func(_ *Converter, _ Event, st *ConversionState) (string, error) {
				st.Info.Kind = "article"
				return "", nil
			},
		},
		"info": {
			OnStart: func(_ *Converter, _ Event, st *ConversionState) (string, error) {
				st.InInfo = true
				return "", nil
			},
			OnEnd: func(_ *Converter, _ Event, st *ConversionState) (string, error) {
				st.InInfo = false
				return "", nil
			},
		},
		"section":    sectionHandler(2),
		"subsection": sectionHandler(3),
		"title": {
			OnStart: func(_ *Converter, ev Event, st *ConversionState) (string, error) {
				if st.InInfo {
					st.PushCapture(ev.Name)
					return "", nil
				}
				return fmt.Sprintf("<h%d>", st.HeadingLevel()), nil
			},
			OnEnd: func(_ *Converter, ev Event, st *ConversionState) (string, error) {
				if st.InInfo {
					title, err := st.PopCaptured(ev.Name)
					if err != nil {
						return "", err
					}
					st.Info.Title = strings.TrimSpace(title)
					return "", nil
				}
				return fmt.Sprintf("</h%d>", st.HeadingLevel()), nil
			},
		},
		"createdAt": captureHandler(func(st *ConversionState, s string) {
			st.Info.CreatedAt = s
		}),
		"modifiedAt": captureHandler(func(st *ConversionState, s string) {
			st.Info.ModifiedAt = s
		}),
		"tag": {
			OnStart: func(_ *Converter, ev Event, st *ConversionState) (string, error) {
				if !st.InInfo {
					return "", &InvariantError{Msg: "<tag> must appear inside <info>"}
				}
				st.PushCapture(ev.Name)
				return "", nil
			},
			OnEnd: func(_ *Converter, ev Event, st *ConversionState) (string, error) {
				tag, err := st.PopCaptured(ev.Name)
				if err != nil {
					return "", err
				}
				st.Info.Tags = append(st.Info.Tags, tag)
				return "", nil
			},
		},
		"draft": {
			OnEmpty: func(_ *Converter, _ Event, st *ConversionState) (string, error) {
				if !st.InInfo {
					return "", &InvariantError{Msg: "<draft/> must appear inside <info>"}
				}
				st.Info.Draft = true
				return "", nil
			},
		},
		"eq": {
			OnStart: startCapture,
			OnEnd: func(cv *Converter, ev Event, st *ConversionState) (string, error) {
				captured, err := st.PopCaptured(ev.Name)
				if err != nil {
					return "", err
				}
				eq, err := cv.ext.renderMath(ev.Name, captured, true)
				if err != nil {
					return "", err
				}
				return `<div class="displayMath">` + eq + `</div>`, nil
			},
		},
		"ieq": {
			OnStart: startCapture,
			OnEnd: func(cv *Converter, ev Event, st *ConversionState) (string, error) {
				captured, err := st.PopCaptured(ev.Name)
				if err != nil {
					return "", err
				}
				return cv.ext.renderMath(ev.Name, captured, false)
			},
		},
		"listing": codeHandler("text", false),
		"code":    codeHandler("shell", true),
		"diagram": {
			OnStart: startCapture,
			OnEnd: func(cv *Converter, ev Event, st *ConversionState) (string, error) {
				captured, err := st.PopCaptured(ev.Name)
				if err != nil {
					return "", err
				}
				return cv.ext.renderDiagram(ev.Name, captured)
			},
		},
		"figure": {
			OnStart: startCaptureWithAttributes,
			OnEnd: func(_ *Converter, ev Event, st *ConversionState) (string, error) {
				captured, attr, err := popCapturedWithAttributes(ev.Name, st)
				if err != nil {
					return "", err
				}
				src, ok := attr.Get("src")
				if !ok {
					return "", &MissingAttributeError{Tag: ev.Name, Attr: "src"}
				}
				return fmt.Sprintf(`<img src="%s" alt="%s" />`, src, captured), nil
			},
		},
	}

	for _, names := range [][2]string{
		{"p", "p"},
		{"ol", "ol"},
		{"ul", "ul"},
		{"li", "li"},
		{"em", "em"},
		{"a", "a"},
		{"abbr", "abbr"},
		{"blockquote", "blockquote"},
		{"caption", "caption"},
		{"cite", "cite"},
		{"quote", "q"},
		{"q", "q"},
		{"strong", "strong"},
	} {
		defaultHandlers[names[0]] = renameHandler(names[1])
	}
}

// renameHandler reproduces a tag with all its attributes under the output name.
func renameHandler(output string) TagHandler {
	return TagHandler{
		OnStart: func(_ *Converter, ev Event, _ *ConversionState) (string, error) {
			return "<" + output + ev.Attr.String() + ">", nil
		},
		OnEnd: func(_ *Converter, _ Event, _ *ConversionState) (string, error) {
			return "</" + output + ">", nil
		},
	}
}

func sectionHandler(level int) TagHandler {
	return TagHandler{
		OnStart: func(_ *Converter, _ Event, st *ConversionState) (string, error) {
			st.PushSection(level)
			return "", nil
		},
		OnEnd: func(_ *Converter, _ Event, st *ConversionState) (string, error) {
			st.PopSection()
			return "", nil
		},
	}
}

// captureHandler captures the content of a tag and hands it to set.
func captureHandler(set func(st *ConversionState, captured string)) TagHandler {
	return TagHandler{
		OnStart: startCapture,
		OnEnd: func(_ *Converter, ev Event, st *ConversionState) (string, error) {
			captured, err := st.PopCaptured(ev.Name)
			if err != nil {
				return "", err
			}
			set(st, captured)
			return "", nil
		},
	}
}

func codeHandler(defaultLang string, inline bool) TagHandler {
	return TagHandler{
		OnStart: startCaptureWithAttributes,
		OnEnd: func(cv *Converter, ev Event, st *ConversionState) (string, error) {
			captured, attr, err := popCapturedWithAttributes(ev.Name, st)
			if err != nil {
				return "", err
			}
			return cv.ext.highlight(ev.Name, captured, HighlightOptions{
				Language: attr.Lookup("lang", defaultLang),
				Theme:    cv.codeTheme,
				Inline:   inline,
			})
		},
	}
}

func startCapture(_ *Converter, ev Event, st *ConversionState) (string, error) {
	st.PushCapture(ev.Name)
	return "", nil
}

func startCaptureWithAttributes(_ *Converter, ev Event, st *ConversionState) (string, error) {
	st.PushCapture(ev.Name)
	st.PushAttributes(ev.Name, ev.Attr)
	return "", nil
}

func popCapturedWithAttributes(tag string, st *ConversionState) (string, Attributes, error) {
	captured, err := st.PopCaptured(tag)
	if err != nil {
		return "", nil, err
	}
	attr, err := st.PopAttributes(tag)
	if err != nil {
		return "", nil, err
	}
	return captured, attr, nil
}
