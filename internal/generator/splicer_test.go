package generator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHeading(t *testing.T, title string) *regexp.Regexp {
	t.Helper()
	re, err := NewHeadingMatcher(title)
	require.NoError(t, err)
	return re
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", ""}, SplitLines("a\r\nb\nc\n"))
	assert.Equal(t, []string{""}, SplitLines(""))
}

func TestNewHeadingMatcher(t *testing.T) {
	re := mustHeading(t, "Parameters")
	assert.True(t, re.MatchString("## Parameters"))
	assert.True(t, re.MatchString("#### Parameters"))
	assert.True(t, re.MatchString("## Parameters and values"))
	assert.False(t, re.MatchString("# Parameters"), "one marker is the document title")
	assert.False(t, re.MatchString("##Parameters"))
	assert.False(t, re.MatchString("## parameters"))
	assert.False(t, re.MatchString(" ## Parameters"))

	_, err := NewHeadingMatcher("Param(")
	assert.Error(t, err)
}

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		line string
		want LineKind
	}{
		{"", Blank},
		{"   \t", Blank},
		{"| a | b |", TableRow},
		{"| --- | --- |", TableRow},
		{"prose with a | pipe", TableRow},
		{"### Sub section", Heading},
		{"# Top title", Heading},
		{"  #not a heading but hash-led", Heading},
		{"## Next", SiblingHeading},
		{"##\tTabbed", SiblingHeading},
		{"## Pipe | heading", SiblingHeading},
		{"Some prose", Other},
		{"- list item", Other},
		{"text # with hash", Other},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyLine(tc.line, "##"), "%q", tc.line)
	}
}

func TestLineKind_EndsSection(t *testing.T) {
	assert.False(t, Blank.EndsSection())
	assert.False(t, TableRow.EndsSection())
	assert.False(t, Heading.EndsSection())
	assert.True(t, SiblingHeading.EndsSection())
	assert.True(t, Other.EndsSection())
}

func TestLocateParametersSection_SiblingHeadingEnds(t *testing.T) {
	lines := SplitLines("# Title\n\n## Parameters\n\n| old |\n\n## Next\n")

	b, err := LocateParametersSection(lines, mustHeading(t, "Parameters"))
	require.NoError(t, err)
	assert.Equal(t, Boundary{Start: 2, End: 6, Prefix: "##"}, b)
}

func TestLocateParametersSection_ProseEnds(t *testing.T) {
	lines := SplitLines("### Parameters\n\n#### Sub\n\n| a |\nTrailing prose\n")

	b, err := LocateParametersSection(lines, mustHeading(t, "Parameters"))
	require.NoError(t, err)
	assert.Equal(t, Boundary{Start: 0, End: 5, Prefix: "###"}, b)
}

func TestLocateParametersSection_HigherHeadingDoesNotEnd(t *testing.T) {
	lines := SplitLines("## Parameters\n\n| a |\n# Top\nprose\n")

	b, err := LocateParametersSection(lines, mustHeading(t, "Parameters"))
	require.NoError(t, err)
	assert.Equal(t, 4, b.End)
}

func TestLocateParametersSection_LastSectionFallback(t *testing.T) {
	lines := SplitLines("# Title\n\n## Parameters\n\n| old |\n")

	b, err := LocateParametersSection(lines, mustHeading(t, "Parameters"))
	require.NoError(t, err)
	assert.Equal(t, len(lines)-1, b.End)
}

func TestLocateParametersSection_NotFound(t *testing.T) {
	_, err := LocateParametersSection(SplitLines("# Title\n\n## Usage\n"), mustHeading(t, "Parameters"))
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestLocateParametersSection_TwoHeadings(t *testing.T) {
	lines := SplitLines("## Parameters\n\n| a |\n\n## Parameters\n\n| b |\n")

	_, err := LocateParametersSection(lines, mustHeading(t, "Parameters"))
	assert.ErrorIs(t, err, ErrAmbiguousSection)
}

func TestLocateParametersSection_DeeperMatchesIgnored(t *testing.T) {
	heading := mustHeading(t, "Parameters")

	lines := SplitLines("## Parameters\n\n### Parameters of the exporter\n\n| a |\n\n## Next\n")
	b, err := LocateParametersSection(lines, heading)
	require.NoError(t, err)
	assert.Equal(t, Boundary{Start: 0, End: 6, Prefix: "##"}, b)

	lines = SplitLines("# Intro\n\n### Parameters note\n\n## Parameters\n\n## Next\n")
	b, err = LocateParametersSection(lines, heading)
	require.NoError(t, err)
	assert.Equal(t, Boundary{Start: 4, End: 6, Prefix: "##"}, b)
}

func TestLocateParametersSection_HeadingOnLastLine(t *testing.T) {
	_, err := LocateParametersSection(SplitLines("# Title\n## Parameters"), mustHeading(t, "Parameters"))
	assert.ErrorIs(t, err, ErrAmbiguousSection)
}

func TestSpliceSection(t *testing.T) {
	lines := []string{"# T", "## Parameters", "old 1", "old 2", "## Next", ""}
	orig := append([]string(nil), lines...)

	got := SpliceSection(lines, Boundary{Start: 1, End: 4, Prefix: "##"}, "\nnew\n")
	assert.Equal(t, []string{"# T", "## Parameters", "", "new", "", "## Next", ""}, got)
	assert.Equal(t, orig, lines)
}

func TestSpliceSection_EmptyBody(t *testing.T) {
	lines := []string{"## Parameters", "## Next"}

	got := SpliceSection(lines, Boundary{Start: 0, End: 1, Prefix: "##"}, "")
	assert.Equal(t, []string{"## Parameters", "", "## Next"}, got)
}
