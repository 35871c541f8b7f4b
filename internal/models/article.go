// Package models defines data structures shared by the crawler pipeline.
package models

// NotFound is the placeholder stored when an optional article field
// cannot be extracted from the page.
const NotFound = "NOT FOUND"

// Article represents one scraped news article. The ID is assigned by the
// pipeline from the article's position in the collected URL list (1-based)
// and is not derived from page content.
type Article struct {
	ID     int      `json:"id"`
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Author []string `json:"author"`
	Date   string   `json:"date"`
	Text   string   `json:"-"`
}

// NewArticle creates an article in its initial state. Title, Author and
// Text stay at their zero values until the extractor fills them in; a
// record persisted in this state marks an article whose fetch failed.
func NewArticle(url string, id int) *Article {
	return &Article{
		ID:  id,
		URL: url,
	}
}
