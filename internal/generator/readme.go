package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"readmegen/internal/config"
	"readmegen/internal/logging"
	"readmegen/internal/params"
)

// ErrOutdated is returned by CheckReadme when the README does not match the
// rendered parameters.
var ErrOutdated = errors.New("parameters section is out of date")

// writeFile is swapped in tests to exercise write failures.
var writeFile = os.WriteFile

// RenderReadme returns content with the body of its Parameters section
// replaced by the tables for group. Lines are joined with "\n" regardless of
// the input line endings.
func RenderReadme(ctx context.Context, content string, group params.Group, heading *regexp.Regexp) (string, error) {
	log := logging.FromContext(ctx)
	lines := SplitLines(content)

	b, err := LocateParametersSection(lines, heading)
	if err != nil {
		return "", err
	}
	log.Info().Int("line", b.Start+1).Str("heading", lines[b.Start]).Msg("found parameters section")
	if b.End == len(lines)-1 && !ClassifyLine(lines[b.End], b.Prefix).EndsSection() {
		log.Info().Msg("parameters section seems to be the last section in the file")
	} else {
		log.Info().Int("line", b.End+1).Str("text", lines[b.End]).Msg("found section end")
	}

	body := RenderAllSections(group, b.Prefix+"#")
	return strings.Join(SpliceSection(lines, b, body), "\n"), nil
}

// InsertParametersTable rewrites the Parameters section of the markdown file
// at path. The file is only written once the new content is fully built.
func InsertParametersTable(ctx context.Context, path string, group params.Group, cfg *config.Config) error {
	heading, err := NewHeadingMatcher(cfg.Regexp.ParamsSectionTitle)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read readme: %w", err)
	}

	out, err := RenderReadme(ctx, string(data), group, heading)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logging.FromContext(ctx).Info().Str("file", path).Msg("inserting the new table into the readme")
	mode := os.FileMode(0644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := writeFile(path, []byte(out), mode); err != nil {
		return fmt.Errorf("write readme: %w", err)
	}
	return nil
}

// CheckReadme renders the README in memory and returns ErrOutdated if the
// result differs from what is on disk. Nothing is written.
func CheckReadme(ctx context.Context, path string, group params.Group, cfg *config.Config) error {
	heading, err := NewHeadingMatcher(cfg.Regexp.ParamsSectionTitle)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read readme: %w", err)
	}

	out, err := RenderReadme(ctx, string(data), group, heading)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if out != string(data) {
		return fmt.Errorf("%s: %w", path, ErrOutdated)
	}
	return nil
}
