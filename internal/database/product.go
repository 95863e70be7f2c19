package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/everywear-ai/crawler/internal/models"
)

// ProductRepository persists crawled products and their reviews.
type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// SaveWithReviews upserts a product and replaces its reviews in one
// transaction, returning the product row id. The price is stored as its
// numeric value; the formatted string stays on the wire only.
func (r *ProductRepository) SaveWithReviews(ctx context.Context, product *models.Product, reviews []models.Review) (int64, error) {
	var productID int64

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO product (
				shoppingmall_name, product_url, product_num, category,
				product_img_url, product_name, brand_name,
				price, star_point, ai_review, scraped_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (product_url) DO UPDATE SET
				shoppingmall_name = EXCLUDED.shoppingmall_name,
				product_num = EXCLUDED.product_num,
				category = EXCLUDED.category,
				product_img_url = EXCLUDED.product_img_url,
				product_name = EXCLUDED.product_name,
				brand_name = EXCLUDED.brand_name,
				price = EXCLUDED.price,
				star_point = EXCLUDED.star_point,
				scraped_at = EXCLUDED.scraped_at,
				updated_at = CURRENT_TIMESTAMP
			RETURNING product_id`

		err := tx.QueryRow(ctx, query,
			product.ShoppingmallName, product.ProductURL, product.ProductNum,
			product.Category, product.ProductImgURL, product.ProductName,
			product.BrandName, product.PriceNumeric(), product.StarPoint,
			product.AIReview, product.ScrapedAt,
		).Scan(&productID)
		if err != nil {
			return fmt.Errorf("failed to upsert product: %w", err)
		}

		if len(reviews) == 0 {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM review WHERE product_id = $1`, productID); err != nil {
			return fmt.Errorf("failed to clear old reviews: %w", err)
		}

		reviewQuery := `
			INSERT INTO review (
				product_id, rating, content, review_date,
				images, user_height, user_weight, option_text
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		for _, review := range reviews {
			_, err := tx.Exec(ctx, reviewQuery,
				productID, review.Rating, review.Content, review.ReviewDate,
				review.Images, review.UserHeight, review.UserWeight, review.OptionText,
			)
			if err != nil {
				return fmt.Errorf("failed to insert review: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return productID, nil
}

// FindIDByURL returns the row id of a previously saved product, or nil.
func (r *ProductRepository) FindIDByURL(ctx context.Context, productURL string) (*int64, error) {
	var id int64
	err := r.db.pool.QueryRow(ctx,
		`SELECT product_id FROM product WHERE product_url = $1`, productURL).Scan(&id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	return &id, nil
}

// CountByMall returns how many products are stored per mall.
func (r *ProductRepository) CountByMall(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT shoppingmall_name, COUNT(*)
		FROM product
		GROUP BY shoppingmall_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var mall string
		var count int
		if err := rows.Scan(&mall, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[mall] = count
	}

	return counts, nil
}

// CountReviews returns the total number of stored reviews.
func (r *ProductRepository) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM review`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
