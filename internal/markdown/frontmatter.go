package markdown

import (
	"bytes"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/hakula139/kiln/pkg/interfaces"
)

// summaryMarker splits a document body into summary and remainder.
const summaryMarker = "<!--more-->"

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. Both TOML (+++) and YAML (---) envelopes are
// accepted; documents without frontmatter parse with zero metadata.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, goerrors.Wrap(err, goerrors.CategoryValidation, "parse frontmatter").
			WithTextCode("FRONTMATTER_INVALID")
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. The summary is cut at the first
// <!--more--> marker when present.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		Slug:         DeriveSlug(path, meta),
		FrontMatter:  meta,
		Body:         body,
		Summary:      extractSummary(body),
		LastModified: modified,
	}, nil
}

// DeriveSlug resolves the document slug. An explicit frontmatter slug is
// normalized and wins; otherwise the slug comes from the file name, with
// "index" bundles taking their directory name.
func DeriveSlug(path string, meta interfaces.FrontMatter) string {
	if meta.Slug != "" {
		if normalized, err := slug.Normalize(meta.Slug); err == nil {
			return normalized
		}
	}

	name := strings.TrimSuffix(pathBase(path), ".md")
	if name == "index" {
		if dir := pathBase(pathDir(path)); dir != "." && dir != "/" && dir != "" {
			name = dir
		}
	}
	normalized, err := slug.Normalize(name)
	if err != nil {
		return name
	}
	return normalized
}

func extractSummary(body []byte) string {
	text := string(body)
	if idx := strings.Index(text, summaryMarker); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return ""
}

func pathBase(path string) string {
	path = strings.TrimSuffix(path, "/")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func pathDir(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx]
	}
	return "."
}

type frontMatterEnvelope struct {
	Title         string    `yaml:"title" toml:"title"`
	Description   string    `yaml:"description" toml:"description"`
	Slug          string    `yaml:"slug" toml:"slug"`
	Date          time.Time `yaml:"date" toml:"date"`
	Updated       time.Time `yaml:"updated" toml:"updated"`
	Draft         bool      `yaml:"draft" toml:"draft"`
	Tags          []string  `yaml:"tags" toml:"tags"`
	Categories    []string  `yaml:"categories" toml:"categories"`
	FeaturedImage string    `yaml:"featured_image" toml:"featured_image"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	return interfaces.FrontMatter{
		Title:         env.Title,
		Description:   env.Description,
		Slug:          env.Slug,
		Date:          env.Date,
		Updated:       env.Updated,
		Draft:         env.Draft,
		Tags:          append([]string(nil), env.Tags...),
		Categories:    append([]string(nil), env.Categories...),
		FeaturedImage: env.FeaturedImage,
	}
}
