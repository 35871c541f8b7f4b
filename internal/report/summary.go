// Package report renders the end-of-run crawl summary.
package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"otrscraper/internal/models"
)

// Row statuses.
const (
	StatusSaved   = "saved"
	StatusEmpty   = "empty"
	StatusSkipped = "skipped"
)

// maxTitleWidth caps the title column.
const maxTitleWidth = 40

// Row describes the outcome for one collected URL.
type Row struct {
	ID     int
	URL    string
	Title  string
	Status string
}

// Summary accumulates per-article outcomes during a run.
type Summary struct {
	rows []Row
}

// AddArticle records the outcome of a persisted record.
func (s *Summary) AddArticle(article *models.Article, status string) {
	s.rows = append(s.rows, Row{
		ID:     article.ID,
		URL:    article.URL,
		Title:  article.Title,
		Status: status,
	})
}

// AddSkipped records a URL whose extraction produced no record.
func (s *Summary) AddSkipped(id int, url string) {
	s.rows = append(s.rows, Row{
		ID:     id,
		URL:    url,
		Status: StatusSkipped,
	})
}

// Saved counts rows persisted to disk.
func (s *Summary) Saved() int {
	count := 0

	for _, row := range s.rows {
		if row.Status != StatusSkipped {
			count++
		}
	}

	return count
}

// Render formats the summary as a width-aligned table. Titles may contain
// wide runes, so alignment uses display width rather than byte length.
func (s *Summary) Render() string {
	table := [][]string{{"ID", "STATUS", "TITLE", "URL"}}

	for _, row := range s.rows {
		table = append(table, []string{
			strconv.Itoa(row.ID),
			row.Status,
			truncate(row.Title, maxTitleWidth),
			row.URL,
		})
	}

	colWidths := make([]int, len(table[0]))

	for _, row := range table {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var lines []string

	for _, row := range table {
		var sb strings.Builder

		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}

			sb.WriteString(cell)

			if padding := colWidths[i] - runewidth.StringWidth(cell); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}
		}

		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	return runewidth.Truncate(s, maxWidth, "...")
}
