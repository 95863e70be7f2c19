package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/everywear-ai/crawler/internal/database"
	"github.com/everywear-ai/crawler/internal/models"
)

type EventType string

const (
	// EventTypeProductCrawled is published after a product and its reviews
	// are persisted.
	EventTypeProductCrawled EventType = "PRODUCT_CRAWLED"
)

// ProductCrawledPayload announces a freshly crawled product to downstream
// consumers (AI review generation reads these to fill ai_review).
type ProductCrawledPayload struct {
	EventID          string     `json:"event_id"`
	EventType        string     `json:"event_type"`
	Timestamp        time.Time  `json:"timestamp"`
	ProductID        int64      `json:"product_id"`
	ShoppingmallName string     `json:"shoppingmall_name"`
	ProductURL       string     `json:"product_url"`
	ProductNum       *int64     `json:"product_num,omitempty"`
	Category         string     `json:"category"`
	ProductName      string     `json:"product_name"`
	BrandName        string     `json:"brand_name"`
	Price            string     `json:"price"`
	StarPoint        *float64   `json:"star_point,omitempty"`
	ReviewCount      int        `json:"review_count"`
	Source           string     `json:"source"`
}

// NewProductCrawledPayload fills a payload from a crawl result.
func NewProductCrawledPayload(productID int64, product *models.Product, reviewCount int) *ProductCrawledPayload {
	return &ProductCrawledPayload{
		ProductID:        productID,
		ShoppingmallName: product.ShoppingmallName,
		ProductURL:       product.ProductURL,
		ProductNum:       product.ProductNum,
		Category:         product.Category,
		ProductName:      product.ProductName,
		BrandName:        product.BrandName,
		Price:            product.Price,
		StarPoint:        product.StarPoint,
		ReviewCount:      reviewCount,
	}
}

// Publisher writes events through the transactional outbox so a crawl
// event is only ever visible if its product row committed.
type Publisher struct {
	db     *database.DB
	outbox *database.OutboxRepository
	logger *slog.Logger
}

func NewPublisher(db *database.DB, logger *slog.Logger) *Publisher {
	return &Publisher{
		db:     db,
		outbox: database.NewOutboxRepository(db),
		logger: logger.With("component", "event_publisher"),
	}
}

// PublishProductCrawled stores a PRODUCT_CRAWLED event in the outbox.
func (p *Publisher) PublishProductCrawled(ctx context.Context, payload *ProductCrawledPayload) error {
	if payload.EventID == "" {
		payload.EventID = uuid.New().String()
	}
	if payload.EventType == "" {
		payload.EventType = string(EventTypeProductCrawled)
	}
	if payload.Timestamp.IsZero() {
		payload.Timestamp = time.Now()
	}
	if payload.Source == "" {
		payload.Source = "crawler"
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	outboxEvent := &database.OutboxEvent{
		AggregateType: "product",
		AggregateID:   fmt.Sprintf("%d", payload.ProductID),
		EventType:     string(EventTypeProductCrawled),
		Payload:       data,
		TargetStream:  database.DefaultCrawlStream,
	}

	err = p.db.WithTx(ctx, func(tx pgx.Tx) error {
		return p.outbox.InsertWithTx(ctx, tx, outboxEvent)
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("event published to outbox",
		"type", payload.EventType,
		"event_id", payload.EventID,
		"product_id", payload.ProductID,
		"outbox_id", outboxEvent.ID,
	)

	return nil
}
