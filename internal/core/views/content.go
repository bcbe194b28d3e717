package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed content/*.md
var contentFS embed.FS

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// contentPage converts an embedded markdown file to HTML once. The content
// is compiled into the binary, so there is nothing to invalidate.
type contentPage struct {
	file string
	once sync.Once
	html template.HTML
	err  error
}

func (p *contentPage) render() (template.HTML, error) {
	p.once.Do(func() {
		src, err := contentFS.ReadFile(p.file)
		if err != nil {
			p.err = fmt.Errorf("content %s: %w", p.file, err)
			return
		}
		var buf bytes.Buffer
		if err := markdown.Convert(src, &buf); err != nil {
			p.err = fmt.Errorf("content %s: %w", p.file, err)
			return
		}
		p.html = template.HTML(buf.String())
	})
	return p.html, p.err
}

var (
	docsPage  = &contentPage{file: "content/docs.md"}
	learnPage = &contentPage{file: "content/learn.md"}
)

// DocsView is the static documentation page: Green Loan Principles,
// scoring methodology and document requirements.
type DocsView struct{}

func (DocsView) Title() string { return "Documentation" }

func (DocsView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	body, err := docsPage.render()
	if err != nil {
		return "", err
	}
	return render("content.tmpl", struct{ Body template.HTML }{body})
}

// LearnView is the static onboarding and glossary page.
type LearnView struct{}

func (LearnView) Title() string { return "Learn" }

func (LearnView) Render(ctx context.Context, rc Context) (template.HTML, error) {
	body, err := learnPage.render()
	if err != nil {
		return "", err
	}
	return render("content.tmpl", struct{ Body template.HTML }{body})
}
