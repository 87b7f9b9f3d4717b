package catalog

import (
	"context"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Product carries only what this module needs: identity plus a title
// for diagnostics. The full product shape lives elsewhere.
type Product struct {
	shared.BaseEntity
	Title string
}

// NewProduct creates a product row, used by bootstrap and tests
func NewProduct(title string) *Product {
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Title:      title,
	}
}

// ProductReader looks up products by id. The service layer uses it
// only to diagnose which referenced products are invalid after a
// failed association insert.
type ProductReader interface {
	// FindByIDs returns the products whose ids are in the given set;
	// unknown ids are simply absent from the result
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
}

// ProductRepository extends ProductReader with persistence, used by
// seeding and tests
type ProductRepository interface {
	ProductReader
	Save(ctx context.Context, p *Product) error
}
