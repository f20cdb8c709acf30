package http

import (
	_ "embed"
	"html/template"

	"github.com/yanqian/article-summarizer/internal/domain/history"
	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

const indexTemplate = "index.html"

// genericFailure is the only failure text shown on the page; logs keep the
// error code.
const genericFailure = "We could not summarize this article right now. Please try again later."

//go:embed templates/index.html
var indexHTML string

type pageData struct {
	Article string
	Result  *summarizer.Result
	History []history.Entry
	Error   string
}

func newPageTemplate() *template.Template {
	return template.Must(template.New(indexTemplate).Parse(indexHTML))
}
