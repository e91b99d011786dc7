package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaops/tienda-backend/pkg/db/models"
	"github.com/tiendaops/tienda-backend/pkg/enums"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := seedOrderCustomer(t, db, "Altagracia")
	product := seedOrderProduct(t, db, "Pan Sobao", 30, 1000)

	order := &models.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20250110-TEST01",
		CustomerID:  customer,
		TotalCents:  2000,
		Status:      enums.OrderStatusPendingPreparation,
	}
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItems(ctx, []models.OrderItem{{
		ID:             uuid.New(),
		OrderID:        order.ID,
		ProductID:      product,
		Quantity:       2,
		UnitPriceCents: 1000,
	}}))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Customer)
	assert.Equal(t, "Altagracia", found.Customer.Name)
	require.Len(t, found.Items, 1)
	require.NotNil(t, found.Items[0].Product)
	assert.Equal(t, "Pan Sobao", found.Items[0].Product.Name)
}

func TestRepositoryListNewestFirst(t *testing.T) {
	t.Parallel()

	db := newOrderTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	customer := seedOrderCustomer(t, db, "Jose")

	for i, number := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		order := &models.Order{
			ID:          uuid.New(),
			OrderNumber: number,
			CustomerID:  customer,
			TotalCents:  1000 * (i + 1),
			Status:      enums.OrderStatusPendingPreparation,
		}
		_, err := repo.Create(ctx, order)
		require.NoError(t, err)
		// sqlite timestamps have second resolution; force distinct ordering
		require.NoError(t, db.Exec(
			"UPDATE orders SET created_at = datetime('now', ?) WHERE id = ?",
			fmt.Sprintf("-%d minutes", 3-i), order.ID,
		).Error)
	}

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD-C", orders[0].OrderNumber)
	assert.Equal(t, "ORD-A", orders[2].OrderNumber)
}
