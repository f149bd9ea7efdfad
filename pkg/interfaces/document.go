package interfaces

import "time"

// FrontMatter holds the structured metadata parsed from the head of a
// content file.
type FrontMatter struct {
	Title         string
	Description   string
	Slug          string
	Date          time.Time
	Updated       time.Time
	Draft         bool
	Tags          []string
	Categories    []string
	FeaturedImage string
}

// Document represents a single Markdown content file with parsed metadata.
type Document struct {
	// FilePath is the slash-separated path relative to the content root.
	FilePath string
	// Slug identifies the page in URLs. Explicit frontmatter slugs take
	// priority over the filename-derived slug.
	Slug        string
	FrontMatter FrontMatter
	// Body is the Markdown source with the frontmatter stripped.
	Body []byte
	// Summary is the text before the <!--more--> separator, if any.
	Summary      string
	LastModified time.Time
}
