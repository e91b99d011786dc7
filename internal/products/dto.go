package products

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	Description   *string
	Category      string
	PriceDOPCents int
	CostUSDCents  int
	Stock         int
	ImageURL      *string
}

// UpdateProductInput holds the fields a catalog edit may change. Nil means
// leave untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Category      *string
	PriceDOPCents *int
	CostUSDCents  *int
	Stock         *int
	ImageURL      *string
}
