package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/everywear-ai/crawler/internal/jobs"
	"github.com/everywear-ai/crawler/internal/malls"
	"github.com/everywear-ai/crawler/internal/models"
	"github.com/everywear-ai/crawler/internal/reviews"
	"github.com/everywear-ai/crawler/internal/scraper"
)

type Handlers struct {
	scraper *scraper.Service
	reviews *reviews.Service
	jobs    *jobs.Manager
	logger  *slog.Logger
}

func NewHandlers(scraper *scraper.Service, reviews *reviews.Service, jobs *jobs.Manager, logger *slog.Logger) *Handlers {
	return &Handlers{
		scraper: scraper,
		reviews: reviews,
		jobs:    jobs,
		logger:  logger,
	}
}

// CrawlRequest carries the product page URL to extract.
type CrawlRequest struct {
	URL string `json:"url"`
}

// CrawlResponse wraps the extracted product record.
type CrawlResponse struct {
	Status  string          `json:"status"`
	Product *models.Product `json:"product"`
}

// CrawlProduct extracts a single product page for the mall in the route.
func (h *Handlers) CrawlProduct(w http.ResponseWriter, r *http.Request) {
	mall, ok := h.mallFromRoute(w, r)
	if !ok {
		return
	}

	var req CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	product, err := h.scraper.ExtractProduct(r.Context(), mall, req.URL)
	if err != nil {
		h.logger.Error("product crawl failed", "mall", mall, "url", req.URL, "error", err)
		h.respondError(w, http.StatusInternalServerError, "크롤링 중 오류 발생: "+err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, CrawlResponse{
		Status:  "success",
		Product: product,
	})
}

// ReviewCrawlRequest carries the product page URL and how many reviews to gather.
type ReviewCrawlRequest struct {
	URL         string `json:"url"`
	ReviewCount int    `json:"review_count"`
}

// ReviewCrawlResponse wraps the collected review records.
type ReviewCrawlResponse struct {
	Status  string          `json:"status"`
	Count   int             `json:"count"`
	Reviews []models.Review `json:"reviews"`
}

// CrawlReviews collects reviews for the product page URL in the body.
func (h *Handlers) CrawlReviews(w http.ResponseWriter, r *http.Request) {
	mall, ok := h.mallFromRoute(w, r)
	if !ok {
		return
	}

	var req ReviewCrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	if req.ReviewCount <= 0 {
		req.ReviewCount = reviews.DefaultTargetCount
	}

	records, err := h.reviews.Collect(r.Context(), mall, req.URL, req.ReviewCount)
	if err != nil {
		h.logger.Error("review crawl failed", "mall", mall, "url", req.URL, "error", err)
		if errors.Is(err, reviews.ErrNoProductNumber) {
			h.respondError(w, http.StatusBadRequest, "상품번호를 추출할 수 없습니다")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "크롤링 중 오류 발생: "+err.Error())
		return
	}
	if len(records) == 0 {
		h.respondError(w, http.StatusNotFound, "리뷰를 찾을 수 없습니다")
		return
	}

	h.respondJSON(w, http.StatusOK, ReviewCrawlResponse{
		Status:  "success",
		Count:   len(records),
		Reviews: records,
	})
}

// CreateJobRequest represents a new crawl job request.
type CreateJobRequest struct {
	Mall        string `json:"mall"`
	URL         string `json:"url"`
	ReviewCount int    `json:"review_count"`
}

// CreateJobResponse represents the job creation response.
type CreateJobResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CreateJob enqueues a crawl job processed by the background worker.
func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mall, err := malls.Parse(req.Mall)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "unknown mall: "+req.Mall)
		return
	}
	if req.URL == "" {
		h.respondError(w, http.StatusBadRequest, "url is required")
		return
	}
	if req.ReviewCount <= 0 {
		req.ReviewCount = reviews.DefaultTargetCount
	}

	job, err := h.jobs.CreateJob(r.Context(), mall, req.URL, req.ReviewCount)
	if err != nil {
		h.logger.Error("failed to create job", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	h.respondJSON(w, http.StatusCreated, CreateJobResponse{
		JobID:   job.ID,
		Status:  job.Status,
		Message: "Job created successfully",
	})
}

// GetJob handles job status retrieval.
func (h *Handlers) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		h.respondError(w, http.StatusBadRequest, "job ID is required")
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "job not found")
		return
	}

	h.respondJSON(w, http.StatusOK, job)
}

// ListJobs handles listing recent jobs.
func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobList, err := h.jobs.ListJobs(r.Context())
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	h.respondJSON(w, http.StatusOK, jobList)
}

// GetStats handles statistics retrieval.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.jobs.GetStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

func (h *Handlers) mallFromRoute(w http.ResponseWriter, r *http.Request) (malls.Mall, bool) {
	mall, err := malls.Parse(chi.URLParam(r, "mall"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "unknown mall: "+chi.URLParam(r, "mall"))
		return "", false
	}
	return mall, true
}

// Helper methods
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
