package generator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrSectionNotFound is returned when no heading matches the configured title.
	ErrSectionNotFound = errors.New("parameters section not found")
	// ErrAmbiguousSection is returned when the section boundaries cannot be
	// determined: several matching headings, or nothing after the heading.
	ErrAmbiguousSection = errors.New("error getting current parameters section")
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// SplitLines splits on \r\n or \n.
func SplitLines(s string) []string {
	return lineBreak.Split(s, -1)
}

// Boundary delimits the Parameters section in a line slice.
type Boundary struct {
	Start  int    // index of the heading line
	End    int    // index of the first line after the body
	Prefix string // heading markers of the heading, e.g. "##"
}

// NewHeadingMatcher compiles the pattern for a Parameters heading: two or
// more '#', a space, then the title fragment. The fragment is a regexp.
func NewHeadingMatcher(title string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(##+) ` + title)
	if err != nil {
		return nil, fmt.Errorf("invalid section title pattern %q: %w", title, err)
	}
	return re, nil
}

// LineKind classifies a line while looking for the end of the section.
type LineKind int

const (
	Blank LineKind = iota
	TableRow
	Heading        // a heading that is not a sibling, e.g. a sub-section
	SiblingHeading // same level as the Parameters heading
	Other
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case TableRow:
		return "table-row"
	case Heading:
		return "heading"
	case SiblingHeading:
		return "sibling-heading"
	default:
		return "other"
	}
}

// EndsSection reports whether a line of this kind terminates the section body.
func (k LineKind) EndsSection() bool {
	return k == SiblingHeading || k == Other
}

// ClassifyLine classifies line relative to the Parameters heading prefix.
//
// Any '|' makes a line a table row, so prose containing a bare pipe extends
// the section. Lines whose first non-blank character is '#' never end the
// section unless they start with exactly prefix followed by whitespace; a
// higher-level heading such as "# Title" under "##" is therefore kept inside.
func ClassifyLine(line, prefix string) LineKind {
	if rest, ok := strings.CutPrefix(line, prefix); ok && prefix != "" {
		if r := []rune(rest); len(r) > 0 && unicode.IsSpace(r[0]) {
			return SiblingHeading
		}
	}
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	switch {
	case trimmed == "":
		return Blank
	case strings.Contains(line, "|"):
		return TableRow
	case strings.HasPrefix(trimmed, "#"):
		return Heading
	default:
		return Other
	}
}

// LocateParametersSection finds the Parameters heading and the line where its
// body ends. Only matches at the shallowest matching level count, so a deeper
// sub-heading whose title also matches does not make the document ambiguous.
// If nothing ends the body before the last line, End is the last line index.
func LocateParametersSection(lines []string, heading *regexp.Regexp) (Boundary, error) {
	b := Boundary{Start: -1, End: -1}
	matches := 0
	for i, line := range lines {
		m := heading.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch {
		case matches == 0 || len(m[1]) < len(b.Prefix):
			b.Start = i
			b.Prefix = m[1]
			matches = 1
		case len(m[1]) == len(b.Prefix):
			matches++
		}
	}
	switch {
	case matches == 0:
		return Boundary{}, ErrSectionNotFound
	case matches > 1:
		return Boundary{}, fmt.Errorf("%w: %d %s headings match", ErrAmbiguousSection, matches, b.Prefix)
	}

	for i := b.Start + 1; i < len(lines); i++ {
		if ClassifyLine(lines[i], b.Prefix).EndsSection() || i == len(lines)-1 {
			b.End = i
			break
		}
	}
	if b.End < 0 {
		return Boundary{}, fmt.Errorf("%w: heading is the last line", ErrAmbiguousSection)
	}
	return b, nil
}

// SpliceSection replaces the body between the heading and b.End with the
// lines of replacement. The heading line and everything from b.End on are
// kept. lines is not modified.
func SpliceSection(lines []string, b Boundary, replacement string) []string {
	repl := SplitLines(replacement)
	out := make([]string, 0, len(lines)-(b.End-b.Start-1)+len(repl))
	out = append(out, lines[:b.Start+1]...)
	out = append(out, repl...)
	out = append(out, lines[b.End:]...)
	return out
}
