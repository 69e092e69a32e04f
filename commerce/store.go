// Package commerce reads subscription and product data owned by the
// commerce extension. Nothing here writes to that store.
package commerce

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
)

// SubscriptionStatus mirrors the status column of the subscriptions table.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionOnHold    SubscriptionStatus = "on-hold"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

const productStatusPublished = "publish"

var requiredTables = []string{"products", "subscriptions", "subscription_items"}

// Detect reports gate_errors.ErrCommerceUnavailable when the extension's
// tables are missing from db.
func Detect(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return gate_errors.ErrCommerceUnavailable
	}
	for _, table := range requiredTables {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: table %s missing", gate_errors.ErrCommerceUnavailable, table)
		}
		if err != nil {
			return fmt.Errorf("%w: %v", gate_errors.ErrCommerceUnavailable, err)
		}
	}
	return nil
}

// SQLStore implements the subscription lookup and product catalog over the
// extension's SQLite database.
type SQLStore struct {
	db             *sql.DB
	productBaseURL string
}

func NewSQLStore(db *sql.DB, productBaseURL string) *SQLStore {
	if !strings.HasSuffix(productBaseURL, "/") {
		productBaseURL += "/"
	}
	return &SQLStore{db: db, productBaseURL: productBaseURL}
}

// HasActiveSubscription reports whether userID holds a subscription with
// status "active" that contains productID.
func (s *SQLStore) HasActiveSubscription(ctx context.Context, userID string, productID model.ProductID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM subscriptions s
			JOIN subscription_items i ON i.subscription_id = s.id
			WHERE s.user_id = ? AND i.product_id = ? AND s.status = ?
		)
	`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, string(productID), string(SubscriptionActive)).Scan(&exists); err != nil {
		logger.Error("Subscription lookup failed",
			zap.Error(err),
			zap.String("userID", userID),
			zap.String("productID", string(productID)))
		return false, fmt.Errorf("%w: %v", gate_errors.ErrSubscriptionLookup, err)
	}
	return exists, nil
}

// GetProduct resolves a subscription-type product.
func (s *SQLStore) GetProduct(ctx context.Context, productID model.ProductID) (*model.Product, error) {
	query := `
		SELECT id, name, slug, product_type
		FROM products
		WHERE id = ? AND status = ? AND product_type IN (?, ?)
	`
	row := s.db.QueryRowContext(ctx, query, string(productID), productStatusPublished,
		model.ProductTypeSubscription, model.ProductTypeVariableSubscription)

	product, err := s.scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gate_errors.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	return product, nil
}

// ListSubscriptionProducts returns every published subscription product
// ordered by name.
func (s *SQLStore) ListSubscriptionProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, slug, product_type
		FROM products
		WHERE status = ? AND product_type IN (?, ?)
		ORDER BY name, id
	`
	rows, err := s.db.QueryContext(ctx, query, productStatusPublished,
		model.ProductTypeSubscription, model.ProductTypeVariableSubscription)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscription products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := s.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLStore) scanProduct(row scanner) (*model.Product, error) {
	var (
		id, name, slug, productType string
	)
	if err := row.Scan(&id, &name, &slug, &productType); err != nil {
		return nil, err
	}
	return &model.Product{
		ID:        model.ProductID(id),
		Name:      name,
		Permalink: s.productBaseURL + slug + "/",
		Type:      productType,
	}, nil
}
