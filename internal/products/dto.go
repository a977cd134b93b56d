package products

// CreateProductInput holds the catalog fields for a new SKU.
type CreateProductInput struct {
	SKU     string  `json:"sku" validate:"required,max=64"`
	Name    string  `json:"name" validate:"required,max=255"`
	Barcode *string `json:"barcode,omitempty" validate:"omitempty,max=64"`
}

// UpdateProductInput carries the cosmetic fields that may change after
// creation. The SKU itself is immutable.
type UpdateProductInput struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Barcode *string `json:"barcode,omitempty" validate:"omitempty,max=64"`
}
