package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/everywear-ai/crawler/internal/events"
	"github.com/everywear-ai/crawler/internal/malls"
)

// jobTimeout bounds one crawl end to end. Scroll collection against a slow
// feed can legitimately take minutes; anything past this is stuck.
const jobTimeout = 10 * time.Minute

// StartWorker polls for pending jobs until the context is cancelled.
func (m *Manager) StartWorker(ctx context.Context) {
	m.logger.Info("job worker started")

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("job worker stopping")
			return
		case <-ticker.C:
			m.processNextJob(ctx)
		}
	}
}

// claimJobQuery claims the oldest pending job and flips it to running in
// one statement, so the SKIP LOCKED row lock covers the status transition.
// A claim split into a select and a later update would let a second worker
// grab the same row in between.
const claimJobQuery = `
	UPDATE crawl_jobs
	SET status = 'running', started_at = $1
	WHERE id = (
		SELECT id
		FROM crawl_jobs
		WHERE status = 'pending'
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING id, mall, product_url, review_count`

// processNextJob claims and runs the oldest pending job.
func (m *Manager) processNextJob(ctx context.Context) {
	var jobID, mallName, productURL string
	var reviewCount int

	err := m.db.QueryRow(ctx, claimJobQuery, time.Now()).Scan(&jobID, &mallName, &productURL, &reviewCount)
	if err != nil {
		// No pending jobs
		return
	}

	m.logger.Info("processing job", "id", jobID, "mall", mallName, "url", productURL)

	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	err = m.processJob(jobCtx, jobID, mallName, productURL, reviewCount)
	cancel()

	if err != nil {
		m.logger.Error("job failed", "id", jobID, "error", err)
		m.updateJobStatus(ctx, jobID, "failed", err)
		return
	}

	if err := m.updateJobStatus(ctx, jobID, "completed", nil); err != nil {
		m.logger.Error("failed to mark job as completed", "error", err)
	}

	m.logger.Info("job completed", "id", jobID)
}

// processJob runs one crawl: extract the product, collect its reviews,
// persist both, publish the crawl event.
func (m *Manager) processJob(ctx context.Context, jobID, mallName, productURL string, reviewCount int) error {
	mall, err := malls.Parse(mallName)
	if err != nil {
		return err
	}

	product, err := m.scraper.ExtractProduct(ctx, mall, productURL)
	if err != nil {
		return fmt.Errorf("product extraction failed: %w", err)
	}

	collected, err := m.reviews.Collect(ctx, mall, product.ProductURL, reviewCount)
	if err != nil {
		// A product without reviews is still worth persisting.
		m.logger.Warn("review collection failed", "job", jobID, "error", err)
	}

	productID, err := m.products.SaveWithReviews(ctx, product, collected)
	if err != nil {
		return fmt.Errorf("failed to save crawl result: %w", err)
	}

	if err := m.updateJobResult(ctx, jobID, productID, len(collected)); err != nil {
		m.logger.Error("failed to record job result", "job", jobID, "error", err)
	}

	payload := events.NewProductCrawledPayload(productID, product, len(collected))
	if err := m.publisher.PublishProductCrawled(ctx, payload); err != nil {
		m.logger.Error("failed to publish event", "job", jobID, "error", err)
	}

	return nil
}
