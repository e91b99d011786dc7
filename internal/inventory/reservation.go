package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendaops/tienda-backend/pkg/db/models"
	pkgerrors "github.com/tiendaops/tienda-backend/pkg/errors"
)

// ReservationRequest asks to take qty units of a product off the shelf.
type ReservationRequest struct {
	ProductID uuid.UUID
	Qty       int
}

// ReservationResult reports the per-product outcome of a reservation, carrying
// the snapshot data the order engine needs.
type ReservationResult struct {
	ProductID      uuid.UUID
	ProductName    string
	UnitPriceCents int
	Qty            int
}

// Reserve decrements stock for every request inside the caller's transaction.
// Each decrement is a single conditional UPDATE guarded by stock >= qty, so
// two writers contending for the last unit serialize on the product row and
// exactly one wins. Any failure aborts the whole batch: the caller's rollback
// undoes the decrements already applied.
func Reserve(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) ([]ReservationResult, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reservation requires a transaction handle")
	}
	if len(requests) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items to reserve")
	}

	results := make([]ReservationResult, 0, len(requests))
	for _, req := range requests {
		if req.Qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("quantity must be positive for product %s", req.ProductID)).
				WithDetails(map[string]any{"product_id": req.ProductID, "qty": req.Qty})
		}

		res := tx.WithContext(ctx).
			Model(&models.Product{}).
			Where("id = ? AND stock >= ?", req.ProductID, req.Qty).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Qty))
		if res.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "decrementing stock")
		}

		// Zero rows means the guard failed: either the product is gone or
		// there is not enough stock. Load the row to tell the two apart.
		var product models.Product
		if err := tx.WithContext(ctx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound,
					fmt.Sprintf("product %s not found", req.ProductID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product after reservation")
		}
		if res.RowsAffected == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("insufficient stock for %s", product.Name)).
				WithDetails(map[string]any{
					"product_id":   product.ID,
					"product_name": product.Name,
					"available":    product.Stock,
					"requested":    req.Qty,
				})
		}

		results = append(results, ReservationResult{
			ProductID:      product.ID,
			ProductName:    product.Name,
			UnitPriceCents: product.PriceDOPCents,
			Qty:            req.Qty,
		})
	}
	return results, nil
}

// Release returns qty units to stock, compensating a reservation when an
// unshipped order is removed.
func Release(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "release quantity must be positive")
	}
	res := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "restoring stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", productID))
	}
	return nil
}

// Engine is the method-set form of the reservation operations.
type Engine struct{}

func (Engine) Reserve(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) ([]ReservationResult, error) {
	return Reserve(ctx, tx, requests)
}

func (Engine) Release(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	return Release(ctx, tx, productID, qty)
}
