package crawler

import (
	"context"

	"otrscraper/internal/logger"
	"otrscraper/internal/metrics"
	"otrscraper/internal/models"
	"otrscraper/internal/report"
)

// Persister is the persistence collaborator: raw body text first, then
// structured metadata, once per record.
type Persister interface {
	SaveRaw(article *models.Article) error
	SaveMeta(article *models.Article) error
}

// Archiver mirrors persisted records to secondary storage.
type Archiver interface {
	Insert(ctx context.Context, article *models.Article) error
}

// Pipeline sequences URL collection and per-article extraction. One URL
// is fully processed (fetched, extracted, persisted) before the next
// begins; a failed extraction skips that id without aborting the run.
type Pipeline struct {
	collector *Collector
	extractor *Extractor
	store     Persister
	archive   Archiver
	log       *logger.Logger
}

// NewPipeline creates a pipeline. archive may be nil.
func NewPipeline(collector *Collector, extractor *Extractor, store Persister, archive Archiver, log *logger.Logger) *Pipeline {
	return &Pipeline{
		collector: collector,
		extractor: extractor,
		store:     store,
		archive:   archive,
		log:       log,
	}
}

// Run crawls the site and persists every extracted record. Ids are
// 1-based positions in the collected URL list, so skipped extractions
// leave gaps in the persisted output but not in the numbering. Only
// persistence failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*report.Summary, error) {
	summary := &report.Summary{}

	urls := p.collector.FindArticles()

	for i, url := range urls {
		id := i + 1

		article, err := p.extractor.Extract(url, id)
		if err != nil {
			p.log.Warn("extraction aborted", "id", id, "url", url, "error", err)
			summary.AddSkipped(id, url)

			continue
		}

		if err := p.store.SaveRaw(article); err != nil {
			return summary, err
		}

		if err := p.store.SaveMeta(article); err != nil {
			return summary, err
		}

		metrics.ArticlesPersisted.Inc()

		if p.archive != nil {
			if err := p.archive.Insert(ctx, article); err != nil {
				p.log.Warn("archive insert failed", "id", id, "error", err)
			}
		}

		status := report.StatusSaved
		if article.Title == "" {
			status = report.StatusEmpty
		}

		summary.AddArticle(article, status)
		p.log.Info("article persisted", "id", id, "url", url, "status", status)
	}

	return summary, nil
}
