// Package xwl converts XWL documents into HTML.
//
// XWL is a lightweight tag markup for blog posts. A document can be converted in two ways:
//
//   - Convert streams the events of a Tokenizer through a table of tag handlers,
//     collecting the document metadata from its <info> block.
//   - RenderTree builds a tree with Parse and renders it bottom-up with a table of rules.
//
// Math, diagrams and code highlighting are delegated to the renderers in Externals.
package xwl
