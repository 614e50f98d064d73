// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format builds sanitized filenames from bibliographic metadata
// and a format template made of tags like {YYYY} or {Aetal}.
package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Tag identifies one substitution in a filename format template.
type Tag string

const (
	TagYear          Tag = "{YYYY}"
	TagMonth         Tag = "{MM}"
	TagJournal       Tag = "{J}"
	TagJournalAbbrev Tag = "{Jabbr}"
	TagAuthorsAll    Tag = "{Aall}"
	TagAuthorsEtAl   Tag = "{Aetal}"
	TagAuthors3EtAl  Tag = "{A3etal}"
	TagTitle         Tag = "{T}"
)

// AllowedTags maps each tag to the description shown in help output.
var AllowedTags = map[Tag]string{
	TagYear:          "year of publication (4 digits)",
	TagMonth:         "month of publication (2 digits)",
	TagJournal:       "full journal name",
	TagJournalAbbrev: "abbreviated journal name",
	TagAuthorsAll:    "last names of all authors",
	TagAuthorsEtAl:   "last name of the first author, plus \"et al.\" if there are more",
	TagAuthors3EtAl:  "last names of up to three authors, plus \"et al.\" if there are more",
	TagTitle:         "title of the publication",
}

// tagPattern matches any {...} group so unknown tags can be rejected.
var tagPattern = regexp.MustCompile(`\{[^{}]*\}`)

// CheckFormat validates a format template and returns the tags it uses,
// in template order. A template is invalid when it contains an unknown
// {...} group or no known tag at all.
func CheckFormat(format string) ([]Tag, error) {
	if strings.TrimSpace(format) == "" {
		return nil, fmt.Errorf("format is empty")
	}

	var tags []Tag
	for _, group := range tagPattern.FindAllString(format, -1) {
		tag := Tag(group)
		if _, ok := AllowedTags[tag]; !ok {
			return nil, fmt.Errorf("unknown tag %s in format %q", group, format)
		}
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("format %q contains no tags; valid tags are %s", format, TagList())
	}
	return tags, nil
}

// TagList returns the allowed tags as a sorted, comma-separated string.
func TagList() string {
	names := make([]string, 0, len(AllowedTags))
	for tag := range AllowedTags {
		names = append(names, string(tag))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Options control filename building limits.
type Options struct {
	// MaxLengthFilename caps the generated filename (default 250).
	MaxLengthFilename int

	// MaxLengthAuthors caps any author substitution (default 80).
	MaxLengthAuthors int

	// Abbreviations maps full journal names to their abbreviated form,
	// consulted by {Jabbr}. A journal with no entry falls back to the
	// full name.
	Abbreviations map[string]string
}

const (
	defaultMaxLengthFilename = 250
	defaultMaxLengthAuthors  = 80
)

// Builder builds filenames from bibliographic metadata using a fixed,
// pre-validated format template. The template is checked once at
// construction so a directory walk does not re-validate it per file.
type Builder struct {
	format string
	tags   []Tag
	opts   Options
}

// NewBuilder validates the format template and returns a Builder for it.
func NewBuilder(format string, opts Options) (*Builder, error) {
	tags, err := CheckFormat(format)
	if err != nil {
		return nil, err
	}
	if opts.MaxLengthFilename <= 0 {
		opts.MaxLengthFilename = defaultMaxLengthFilename
	}
	if opts.MaxLengthAuthors <= 0 {
		opts.MaxLengthAuthors = defaultMaxLengthAuthors
	}
	return &Builder{format: format, tags: tags, opts: opts}, nil
}

// Format returns the template this builder was constructed with.
func (b *Builder) Format() string {
	return b.format
}

// Build substitutes metadata values into the template and returns a
// filesystem-safe filename without extension. Metadata keys follow
// bibtex conventions: title, author ("Last, First and Last, First"),
// year, month, journal. An error is returned when every substitution
// came up empty, since that filename would carry no information.
func (b *Builder) Build(metadata map[string]string) (string, error) {
	name := b.format
	substituted := false

	for _, tag := range b.tags {
		value := b.value(tag, metadata)
		if value != "" {
			substituted = true
		}
		name = strings.ReplaceAll(name, string(tag), value)
	}

	if !substituted {
		return "", fmt.Errorf("metadata has no values for any tag in %q", b.format)
	}

	name = Sanitize(name)
	if name == "" {
		return "", fmt.Errorf("filename is empty after sanitizing")
	}
	if len(name) > b.opts.MaxLengthFilename {
		name = strings.TrimRight(truncate(name, b.opts.MaxLengthFilename), " .")
	}
	return name, nil
}

// truncate shortens s to at most max bytes without splitting a
// multi-byte rune, so names with accented authors stay valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

func (b *Builder) value(tag Tag, metadata map[string]string) string {
	switch tag {
	case TagYear:
		return metadata["year"]
	case TagMonth:
		return monthNumber(metadata["month"])
	case TagJournal:
		return metadata["journal"]
	case TagJournalAbbrev:
		journal := metadata["journal"]
		if abbr, ok := b.opts.Abbreviations[strings.ToLower(journal)]; ok {
			return abbr
		}
		return journal
	case TagAuthorsAll:
		return b.capAuthors(joinAuthors(lastNames(metadata["author"]), -1))
	case TagAuthorsEtAl:
		return b.capAuthors(joinAuthors(lastNames(metadata["author"]), 1))
	case TagAuthors3EtAl:
		return b.capAuthors(joinAuthors(lastNames(metadata["author"]), 3))
	case TagTitle:
		return metadata["title"]
	}
	return ""
}

func (b *Builder) capAuthors(s string) string {
	if len(s) <= b.opts.MaxLengthAuthors {
		return s
	}
	return strings.TrimRight(truncate(s, b.opts.MaxLengthAuthors), " .,")
}

// lastNames extracts author last names from a bibtex author string,
// where authors are separated by " and " and each is either
// "Last, First" or "First Last".
func lastNames(author string) []string {
	if strings.TrimSpace(author) == "" {
		return nil
	}
	var names []string
	for _, a := range strings.Split(author, " and ") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if comma := strings.Index(a, ","); comma >= 0 {
			names = append(names, strings.TrimSpace(a[:comma]))
			continue
		}
		parts := strings.Fields(a)
		names = append(names, parts[len(parts)-1])
	}
	return names
}

// joinAuthors joins up to max last names with ", ", appending "et al."
// when authors were dropped. max < 0 keeps all names.
func joinAuthors(names []string, max int) string {
	if len(names) == 0 {
		return ""
	}
	if max < 0 || max >= len(names) {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:max], ", ") + " et al."
}

// monthNumber normalizes a bibtex month value ("3", "mar", "March") to
// a two-digit number, or returns it unchanged when unrecognized.
func monthNumber(month string) string {
	m := strings.ToLower(strings.TrimSpace(month))
	if m == "" {
		return ""
	}
	months := map[string]string{
		"jan": "01", "feb": "02", "mar": "03", "apr": "04",
		"may": "05", "jun": "06", "jul": "07", "aug": "08",
		"sep": "09", "oct": "10", "nov": "11", "dec": "12",
	}
	if len(m) >= 3 {
		if num, ok := months[m[:3]]; ok {
			return num
		}
	}
	if len(m) == 1 && m >= "1" && m <= "9" {
		return "0" + m
	}
	return month
}

// reservedChars are characters that are unsafe in filenames on at least
// one supported platform.
var reservedChars = strings.NewReplacer(
	"/", "-", "\\", "-", ":", " -", "*", "", "?", "", "\"", "'",
	"<", "(", ">", ")", "|", "-", "\n", " ", "\r", " ", "\t", " ",
)

// Sanitize makes a candidate filename filesystem-safe: path separators
// and reserved characters are replaced, runs of whitespace collapse to
// a single space, and leading/trailing dots and spaces are trimmed.
func Sanitize(name string) string {
	name = reservedChars.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.Trim(name, " .")
}
