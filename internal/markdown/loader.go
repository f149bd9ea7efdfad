package markdown

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/hakula139/kiln/pkg/interfaces"
)

// LoaderConfig configures how Markdown files are discovered within a base
// directory.
type LoaderConfig struct {
	// IncludeDrafts keeps documents whose frontmatter marks them as drafts.
	IncludeDrafts bool
	// Logger receives discovery diagnostics. Optional.
	Logger interfaces.Logger
}

// Loader turns filesystem paths into Markdown documents with metadata.
// Files and directories whose name starts with an underscore are treated as
// partials and skipped during discovery.
type Loader struct {
	fs            fs.FS
	includeDrafts bool
	logger        interfaces.Logger
}

// NewLoader constructs a Loader over the provided filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	return &Loader{
		fs:            filesystem,
		includeDrafts: cfg.IncludeDrafts,
		logger:        cfg.Logger,
	}
}

// LoadFile reads and parses a single Markdown document.
func (l *Loader) LoadFile(ctx context.Context, filePath string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := path.Clean(filePath)
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "read markdown source").
			WithTextCode("SOURCE_READ_FAILED")
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "stat markdown source").
			WithTextCode("SOURCE_STAT_FAILED")
	}

	return BuildDocument(rel, data, info.ModTime())
}

// LoadDirectory discovers Markdown files under dir and returns parsed
// documents sorted newest-first by frontmatter date. Drafts are filtered out
// unless IncludeDrafts is set.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(dir)
	var docs []*interfaces.Document

	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), "_") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".md") {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		doc, err := l.LoadFile(ctx, p)
		if err != nil {
			return err
		}
		if doc.FrontMatter.Draft && !l.includeDrafts {
			if l.logger != nil {
				l.logger.Debug("skipping draft", "path", p)
			}
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].FrontMatter.Date.After(docs[j].FrontMatter.Date)
	})

	return docs, nil
}

// OutputPath maps a source path to its HTML destination. Bundle documents
// (index.md) map onto their directory's index.html; standalone files get a
// directory of their own so URLs stay extension-free. A leading "posts/"
// segment is stripped from the destination.
func OutputPath(sourcePath string) string {
	rel := strings.TrimPrefix(path.Clean(sourcePath), "posts/")
	dir, file := path.Split(rel)
	name := strings.TrimSuffix(file, ".md")
	if name == "index" {
		return path.Join(dir, "index.html")
	}
	return path.Join(dir, name, "index.html")
}

// PageURL converts an output path into its canonical URL path. Directory
// indexes get a trailing slash.
func PageURL(outputPath string) string {
	url := "/" + strings.TrimPrefix(outputPath, "/")
	if strings.HasSuffix(url, "/index.html") {
		return strings.TrimSuffix(url, "index.html")
	}
	return url
}
