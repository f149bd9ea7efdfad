package main

import (
	"context"
	"flag"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hakula139/kiln"
	"github.com/hakula139/kiln/internal/logging"
	"github.com/hakula139/kiln/internal/logging/gologger"
	"github.com/hakula139/kiln/internal/markdown"
	"github.com/hakula139/kiln/pkg/interfaces"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="{{ .Language }}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}{{ if .SiteTitle }} | {{ .SiteTitle }}{{ end }}</title>
{{ if .Description }}<meta name="description" content="{{ .Description }}">
{{ end }}<link rel="canonical" href="{{ .Canonical }}">
</head>
<body>
<main>
<article>
{{ .Toc }}{{ .Content }}</article>
</main>
</body>
</html>
`

type pageData struct {
	Language    string
	Title       string
	SiteTitle   string
	Description string
	Canonical   string
	Toc         template.HTML
	Content     template.HTML
}

func main() {
	var (
		configPath = flag.String("config", "kiln.toml", "Path to the site configuration file")
		contentDir = flag.String("content-dir", "", "Override the configured content directory")
		outputDir  = flag.String("output-dir", "", "Override the configured output directory")
		drafts     = flag.Bool("drafts", false, "Include documents marked as drafts")
	)
	flag.Parse()

	cfg, err := kiln.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *contentDir != "" {
		cfg.ContentDir = *contentDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *drafts {
		cfg.IncludeDrafts = true
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	if err := build(context.Background(), cfg, provider); err != nil {
		log.Fatalf("build site: %v", err)
	}
}

func build(ctx context.Context, cfg kiln.Config, provider interfaces.LoggerProvider) error {
	logger := logging.BuildLogger(provider)

	loader := markdown.NewLoader(os.DirFS(cfg.ContentDir), markdown.LoaderConfig{
		IncludeDrafts: cfg.IncludeDrafts,
		Logger:        logger,
	})
	docs, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return err
	}
	logger.Info("discovered documents", "count", len(docs))

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return err
	}

	engine := kiln.New(kiln.WithLoggerProvider(provider))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		buildErr error
	)
	for _, doc := range docs {
		wg.Add(1)
		go func(doc *interfaces.Document) {
			defer wg.Done()
			if err := renderPage(engine, page, cfg, doc); err != nil {
				mu.Lock()
				if buildErr == nil {
					buildErr = err
				}
				mu.Unlock()
				logger.Error("render failed", "path", doc.FilePath, "error", err)
				return
			}
			logger.Debug("rendered page", "path", doc.FilePath)
		}(doc)
	}
	wg.Wait()
	if buildErr != nil {
		return buildErr
	}

	logger.Info("site built", "output", cfg.OutputDir, "pages", len(docs))
	return nil
}

func renderPage(engine *kiln.Engine, page *template.Template, cfg kiln.Config, doc *interfaces.Document) error {
	result := engine.ParseDocument(string(doc.Body))

	outPath := markdown.OutputPath(doc.FilePath)
	title := doc.FrontMatter.Title
	if title == "" {
		title = doc.Slug
	}

	var b strings.Builder
	err := page.Execute(&b, pageData{
		Language:    cfg.Language,
		Title:       title,
		SiteTitle:   cfg.Title,
		Description: doc.FrontMatter.Description,
		Canonical:   cfg.NormalizedBaseURL() + markdown.PageURL(outPath),
		Toc:         template.HTML(engine.RenderToc(result.Headings)),
		Content:     template.HTML(result.HTML),
	})
	if err != nil {
		return err
	}

	dest := filepath.Join(cfg.OutputDir, filepath.FromSlash(outPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(b.String()), 0o644)
}
