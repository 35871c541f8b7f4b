package crawler

import (
	"errors"
	"fmt"
	"strings"

	"otrscraper/internal/htmldoc"
	"otrscraper/internal/logger"
	"otrscraper/internal/models"
)

// ErrTitleNotFound indicates an article page without a title element.
// Unlike author and body text, the title has no sentinel fallback; the
// article is abandoned.
var ErrTitleNotFound = errors.New("article page has no title element")

// authorSelector matches the element carrying the author marker.
const authorSelector = `[itemprop="author"]`

// Extractor turns one article page into a populated record. Its fetcher
// forces the response encoding to UTF-8 regardless of configuration.
type Extractor struct {
	fetcher Fetcher
	log     *logger.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(fetcher Fetcher, log *logger.Logger) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		log:     log,
	}
}

// Extract fetches the article URL and fills a record with title, author
// and body text. A failed or non-success fetch is not an error: the
// record comes back in its initial state and the caller persists it
// as-is. A page without a title element is an error and yields no record.
func (e *Extractor) Extract(url string, id int) (*models.Article, error) {
	article := models.NewArticle(url, id)

	resp, err := e.fetcher.Fetch(url)
	if err != nil || !resp.OK() {
		e.log.Warn("article fetch failed", "url", url, "id", id, "error", err)

		return article, nil
	}

	doc, err := htmldoc.Parse(resp.Text)
	if err != nil {
		e.log.Warn("article page did not parse", "url", url, "error", err)

		return article, nil
	}

	e.fillText(doc, article)

	if err := e.fillMeta(doc, article); err != nil {
		return nil, err
	}

	return article, nil
}

// fillText joins the visible text of every div container in document
// order, one block per line.
func (e *Extractor) fillText(doc *htmldoc.Document, article *models.Article) {
	blocks := doc.FindAll("div")
	if len(blocks) == 0 {
		article.Text = models.NotFound

		return
	}

	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		texts = append(texts, block.Text())
	}

	article.Text = strings.Join(texts, "\n")
}

// fillMeta extracts title and author.
func (e *Extractor) fillMeta(doc *htmldoc.Document, article *models.Article) error {
	title, ok := doc.FindFirst("title")
	if !ok {
		return fmt.Errorf("%w: %s", ErrTitleNotFound, article.URL)
	}

	article.Title = title.Text()

	if author, found := doc.FindFirst(authorSelector); found {
		article.Author = []string{author.TrimmedText()}
	} else {
		article.Author = []string{models.NotFound}
	}

	return nil
}

// UnifyDateFormat normalizes a source date string into the record date.
// The source pages carry no machine-readable date yet, so this is a
// deliberate no-op kept as part of the extractor surface.
func (e *Extractor) UnifyDateFormat(dateStr string) {
	_ = dateStr
}
