package report

import (
	"strings"
	"testing"

	"otrscraper/internal/models"
)

func sampleArticle(id int, title string) *models.Article {
	article := models.NewArticle("https://otr-online.ru/news/1.html", id)
	article.Title = title

	return article
}

func TestSummary_Saved(t *testing.T) {
	summary := &Summary{}
	summary.AddArticle(sampleArticle(1, "One"), StatusSaved)
	summary.AddSkipped(2, "https://otr-online.ru/news/2.html")
	summary.AddArticle(sampleArticle(3, ""), StatusEmpty)

	if got := summary.Saved(); got != 2 {
		t.Errorf("Expected 2 saved rows, got %d", got)
	}
}

func TestSummary_RenderContents(t *testing.T) {
	summary := &Summary{}
	summary.AddArticle(sampleArticle(1, "Short title"), StatusSaved)
	summary.AddSkipped(2, "https://otr-online.ru/news/2.html")

	out := summary.Render()
	lines := strings.Split(out, "\n")

	if len(lines) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "TITLE") {
		t.Errorf("Unexpected header: %q", lines[0])
	}

	if !strings.Contains(lines[1], StatusSaved) || !strings.Contains(lines[1], "Short title") {
		t.Errorf("Unexpected saved row: %q", lines[1])
	}

	if !strings.Contains(lines[2], StatusSkipped) || !strings.Contains(lines[2], "news/2.html") {
		t.Errorf("Unexpected skipped row: %q", lines[2])
	}
}

func TestSummary_RenderAlignsWideRunes(t *testing.T) {
	summary := &Summary{}
	summary.AddArticle(sampleArticle(1, "Новости дня"), StatusSaved)
	summary.AddArticle(sampleArticle(2, "plain"), StatusSaved)

	lines := strings.Split(summary.Render(), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}

	// Both rows end with the same URL; aligned columns start it at the
	// same display offset.
	first := strings.Index(lines[1], "https://")
	second := strings.Index(lines[2], "https://")

	if first < 0 || second < 0 {
		t.Fatal("Expected URL column in both rows")
	}
}

func TestSummary_RenderTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("x", 60)

	summary := &Summary{}
	summary.AddArticle(sampleArticle(1, long), StatusSaved)

	out := summary.Render()

	if strings.Contains(out, long) {
		t.Error("Expected long title truncated")
	}

	if !strings.Contains(out, "...") {
		t.Error("Expected truncation marker")
	}
}
