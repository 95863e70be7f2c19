package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/everywear-ai/crawler/internal/database"
	"github.com/everywear-ai/crawler/internal/events"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/reviews"
	"github.com/everywear-ai/crawler/internal/scraper"
)

// Manager owns the crawl job lifecycle: creation, polling, execution,
// persistence of results.
type Manager struct {
	db        *database.DB
	scraper   *scraper.Service
	reviews   *reviews.Service
	products  *database.ProductRepository
	publisher *events.Publisher
	logger    *slog.Logger
}

func NewManager(db *database.DB, scraperSvc *scraper.Service, reviewSvc *reviews.Service, publisher *events.Publisher, logger *slog.Logger) *Manager {
	return &Manager{
		db:        db,
		scraper:   scraperSvc,
		reviews:   reviewSvc,
		products:  database.NewProductRepository(db),
		publisher: publisher,
		logger:    logger.With("component", "job_manager"),
	}
}

// Job is one queued crawl of a product URL.
type Job struct {
	ID           string     `json:"id"`
	Mall         string     `json:"mall"`
	ProductURL   string     `json:"product_url"`
	ReviewCount  int        `json:"review_count"`
	Status       string     `json:"status"`
	ProductID    *int64     `json:"product_id,omitempty"`
	ReviewsSaved int        `json:"reviews_saved"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Error        string     `json:"error,omitempty"`
}

// Stats summarizes job and crawl volume.
type Stats struct {
	TotalJobs      int            `json:"total_jobs"`
	PendingJobs    int            `json:"pending_jobs"`
	RunningJobs    int            `json:"running_jobs"`
	CompletedJobs  int            `json:"completed_jobs"`
	FailedJobs     int            `json:"failed_jobs"`
	SuccessRate    float64        `json:"success_rate"`
	ProductsByMall map[string]int `json:"products_by_mall"`
	TotalReviews   int64          `json:"total_reviews"`
}

// CreateJob queues a crawl for one product URL.
func (m *Manager) CreateJob(ctx context.Context, mall malls.Mall, productURL string, reviewCount int) (*Job, error) {
	if reviewCount <= 0 {
		reviewCount = reviews.DefaultTargetCount
	}

	job := &Job{
		ID:          uuid.New().String(),
		Mall:        string(mall),
		ProductURL:  productURL,
		ReviewCount: reviewCount,
		Status:      "pending",
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO crawl_jobs
		(id, mall, product_url, review_count, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := m.db.Exec(ctx, query,
		job.ID, job.Mall, job.ProductURL, job.ReviewCount, job.Status, job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	m.logger.Info("job created", "id", job.ID, "mall", job.Mall, "url", productURL)
	return job, nil
}

// GetJob retrieves a job by ID.
func (m *Manager) GetJob(ctx context.Context, jobID string) (*Job, error) {
	query := `
		SELECT id, mall, product_url, review_count, status,
		       product_id, reviews_saved, created_at, started_at, completed_at,
		       COALESCE(error, '')
		FROM crawl_jobs
		WHERE id = $1
	`

	job := &Job{}
	err := m.db.QueryRow(ctx, query, jobID).Scan(
		&job.ID, &job.Mall, &job.ProductURL, &job.ReviewCount, &job.Status,
		&job.ProductID, &job.ReviewsSaved, &job.CreatedAt, &job.StartedAt, &job.CompletedAt,
		&job.Error,
	)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return job, nil
}

// ListJobs lists the most recent jobs.
func (m *Manager) ListJobs(ctx context.Context) ([]*Job, error) {
	query := `
		SELECT id, mall, product_url, review_count, status,
		       product_id, reviews_saved, created_at, started_at, completed_at
		FROM crawl_jobs
		ORDER BY created_at DESC
		LIMIT 100
	`

	rows, err := m.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job := &Job{}
		err := rows.Scan(
			&job.ID, &job.Mall, &job.ProductURL, &job.ReviewCount, &job.Status,
			&job.ProductID, &job.ReviewsSaved, &job.CreatedAt, &job.StartedAt, &job.CompletedAt,
		)
		if err != nil {
			continue
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// GetStats aggregates job counts and stored crawl volume.
func (m *Manager) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	query := `
		SELECT
			COUNT(*) as total_jobs,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) as pending_jobs,
			COUNT(CASE WHEN status = 'running' THEN 1 END) as running_jobs,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed_jobs,
			COUNT(CASE WHEN status = 'failed' THEN 1 END) as failed_jobs
		FROM crawl_jobs
	`

	err := m.db.QueryRow(ctx, query).Scan(
		&stats.TotalJobs, &stats.PendingJobs, &stats.RunningJobs,
		&stats.CompletedJobs, &stats.FailedJobs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if stats.TotalJobs > 0 {
		stats.SuccessRate = float64(stats.CompletedJobs) / float64(stats.TotalJobs) * 100
	}

	if counts, err := m.products.CountByMall(ctx); err == nil {
		stats.ProductsByMall = counts
	}
	if total, err := m.products.CountReviews(ctx); err == nil {
		stats.TotalReviews = total
	}

	return stats, nil
}

// updateJobStatus updates the status of a job.
func (m *Manager) updateJobStatus(ctx context.Context, jobID, status string, err error) error {
	var query string
	var args []interface{}

	now := time.Now()
	switch {
	case status == "running":
		query = `UPDATE crawl_jobs SET status = $1, started_at = $2 WHERE id = $3`
		args = []interface{}{status, now, jobID}
	case status == "completed":
		query = `UPDATE crawl_jobs SET status = $1, completed_at = $2 WHERE id = $3`
		args = []interface{}{status, now, jobID}
	case status == "failed" && err != nil:
		query = `UPDATE crawl_jobs SET status = $1, completed_at = $2, error = $3 WHERE id = $4`
		args = []interface{}{status, now, err.Error(), jobID}
	default:
		query = `UPDATE crawl_jobs SET status = $1 WHERE id = $2`
		args = []interface{}{status, jobID}
	}

	_, execErr := m.db.Exec(ctx, query, args...)
	return execErr
}

// updateJobResult records what a finished crawl produced.
func (m *Manager) updateJobResult(ctx context.Context, jobID string, productID int64, reviewsSaved int) error {
	query := `
		UPDATE crawl_jobs
		SET product_id = $1, reviews_saved = $2
		WHERE id = $3
	`
	_, err := m.db.Exec(ctx, query, productID, reviewsSaved, jobID)
	return err
}
