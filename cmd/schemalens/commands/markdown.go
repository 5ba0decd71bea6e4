package commands

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/schemalens/schemalens/anchor"
	"github.com/schemalens/schemalens/outline"
	"github.com/schemalens/schemalens/parser"
)

var headingCaser = cases.Title(language.English)

// MarkdownHeading formats a markdown heading at the given level, title-casing
// plain words while leaving code-styled tokens untouched.
func MarkdownHeading(level int, text string) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	if !strings.ContainsAny(text, "`(){}") {
		text = headingCaser.String(text)
	}
	return strings.Repeat("#", level) + " " + text
}

// RenderMarkdownOutline renders a property listing as a markdown document.
// Each property gets a heading whose anchor matches its dash-delimited path,
// so generated links stay stable across renders.
func RenderMarkdownOutline(w io.Writer, docTitle string, props []outline.Property, root *parser.Schema) {
	title := docTitle
	if title == "" {
		title = "schema outline"
	}
	Writef(w, "%s\n\n", MarkdownHeading(1, title))

	if len(props) == 0 {
		Writef(w, "_No properties._\n")
		return
	}

	Writef(w, "%s\n\n", MarkdownHeading(2, "properties"))
	for _, prop := range props {
		pathKey := prop.PathKey()
		level := 3
		if prop.Depth > 0 {
			level = 4
		}
		Writef(w, "%s\n\n", MarkdownHeading(level, fmt.Sprintf("`%s`", pathKey)))
		Writef(w, "<a id=%q></a>\n\n", anchor.PathToAnchor(pathKey))

		resolved := parser.ResolveSchema(prop.Schema, root)
		if resolved == nil {
			resolved = prop.Schema
		}

		if label := parser.TypeLabel(resolved); label != "" {
			Writef(w, "- Type: `%s`\n", label)
		}
		if prop.Required {
			Writef(w, "- Required: yes\n")
		}
		if prop.Schema != nil && prop.Schema.PatternDerived {
			Writef(w, "- Key pattern: `%s`\n", prop.Schema.OriginPattern)
		}
		if resolved != nil && resolved.Description != "" {
			Writef(w, "\n%s\n", strings.TrimSpace(resolved.Description))
		}
		Writef(w, "\n")
	}
}
