package casefiles

import "regexp"

// emphasisRe matches a span delimited by whole asterisk runs on both
// sides. Spans never cross a line break.
var emphasisRe = regexp.MustCompile(`\*+[^*\n]+?\*+`)

// NormalizeEmphasis rewrites Reddit's single-asterisk spans (*text*) into
// Markdown strong emphasis (**text**). Only spans opened and closed by a
// lone asterisk are rewritten; doubled, bold-italic and unbalanced runs
// are left alone, so normalizing twice yields the same text as
// normalizing once.
func NormalizeEmphasis(text string) string {
	return emphasisRe.ReplaceAllStringFunc(text, func(span string) string {
		if span[1] == '*' || span[len(span)-2] == '*' {
			return span
		}
		return "*" + span + "*"
	})
}
