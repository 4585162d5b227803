package xwl

import "fmt"

// Info is the metadata of a document, read from its <info> block.
type Info struct {
	Kind       string   `yaml:"kind"`
	Title      string   `yaml:"title"`
	CreatedAt  string   `yaml:"createdAt"`
	ModifiedAt string   `yaml:"modifiedAt"`
	Tags       []string `yaml:"tags"`
	Draft      bool     `yaml:"draft"`
}

// DefaultInfo returns the metadata used for the fields a document does not set.
func DefaultInfo() Info {
	return Info{
		Kind:       "article",
		Title:      "title",
		CreatedAt:  "2000-01-01",
		ModifiedAt: "2000-01-01",
		Tags:       []string{},
	}
}

type attrFrame struct {
	tag  string
	attr Attributes
}

// ConversionState is the mutable state of one conversion run.
// It belongs to a single document and is never shared.
type ConversionState struct {
	// Heading levels of the open section and subsection tags
	sectionStack []int

	attrStack []attrFrame

	// Names of the tags currently capturing character data, and what they captured
	captureRequests []string
	captured        map[string]string

	InInfo bool
	Info   Info
}

// NewConversionState returns a fresh state with default metadata.
func NewConversionState() *ConversionState {
	return &ConversionState{
		captured: make(map[string]string),
		Info:     DefaultInfo(),
	}
}

// PushSection opens a section with the given heading level.
func (st *ConversionState) PushSection(level int) {
	st.sectionStack = append(st.sectionStack, level)
}

// PopSection closes the innermost section.
func (st *ConversionState) PopSection() {
	if len(st.sectionStack) > 0 {
		st.sectionStack = st.sectionStack[:len(st.sectionStack)-1]
	}
}

// HeadingLevel returns the heading level of the innermost section, or 1 outside any section.
func (st *ConversionState) HeadingLevel() int {
	if len(st.sectionStack) == 0 {
		return 1
	}
	return st.sectionStack[len(st.sectionStack)-1]
}

// Capturing reports whether character data is being captured.
func (st *ConversionState) Capturing() bool {
	return len(st.captureRequests) > 0
}

// PushCapture starts capturing character data for tag.
func (st *ConversionState) PushCapture(tag string) {
	st.captureRequests = append(st.captureRequests, tag)
}

// AppendCaptured adds text to the buffer of every open capture request.
func (st *ConversionState) AppendCaptured(text string) {
	for _, request := range st.captureRequests {
		st.captured[request] += text
	}
}

// PopCaptured stops capturing for tag and returns what was captured.
// The innermost capture request must belong to tag.
func (st *ConversionState) PopCaptured(tag string) (string, error) {
	if len(st.captureRequests) == 0 {
		return "", &InvariantError{Msg: fmt.Sprintf("popping capture for '%s' with no capture requests", tag)}
	}

	captured := st.captured[tag]
	delete(st.captured, tag)

	request := st.captureRequests[len(st.captureRequests)-1]
	st.captureRequests = st.captureRequests[:len(st.captureRequests)-1]

	if request != tag {
		return "", &InvariantError{Msg: fmt.Sprintf("incorrect capturing, expects: %s, actual: %s", tag, request)}
	}
	return captured, nil
}

// PushAttributes saves the attributes of tag until its end tag.
func (st *ConversionState) PushAttributes(tag string, attr Attributes) {
	st.attrStack = append(st.attrStack, attrFrame{tag: tag, attr: attr})
}

// PopAttributes returns the attributes saved for tag.
func (st *ConversionState) PopAttributes(tag string) (Attributes, error) {
	if len(st.attrStack) == 0 {
		return nil, &InvariantError{Msg: fmt.Sprintf("popping attributes for '%s' with an empty stack", tag)}
	}
	frame := st.attrStack[len(st.attrStack)-1]
	st.attrStack = st.attrStack[:len(st.attrStack)-1]

	if frame.tag != tag {
		return nil, &InvariantError{Msg: fmt.Sprintf("incorrect attributes, expects: %s, actual: %s", tag, frame.tag)}
	}
	return frame.attr, nil
}
