package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Mdwaseel/batsdatacollection/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateProductRequest is the `product` JSON part of the multipart submit.
// Name and regular price are the only hard requirements; everything else is
// optional catalog detail.
type CreateProductRequest struct {
	ProductName  string            `json:"product_name"  validate:"required,min=1,max=200"`
	ProductType  model.ProductType `json:"product_type"  validate:"required,oneof=simple variable deep_customization"`
	SKU          string            `json:"sku"           validate:"max=64"`
	RegularPrice decimal.Decimal   `json:"regular_price" validate:"required,gt=0"`
	SalePrice    decimal.Decimal   `json:"sale_price"    validate:"min=0"`

	StockStatus   model.StockStatus `json:"stock_status"   validate:"omitempty,oneof=in_stock out_of_stock on_backorder"`
	StockQuantity int               `json:"stock_quantity" validate:"min=0"`
	Weight        decimal.Decimal   `json:"weight"         validate:"min=0"`

	Category         string `json:"category"`
	ShortDescription string `json:"short_description"`
	FullDescription  string `json:"full_description"`

	// Variations is read only when product_type is "variable".
	Variations []VariationInput `json:"variations" validate:"omitempty,max=10,dive"`
	// DeepCustomization is read only when product_type is "deep_customization".
	DeepCustomization *DeepCustomizationInput `json:"deep_customization"`
}

type VariationInput struct {
	Name  string          `json:"name"  validate:"required"`
	Price decimal.Decimal `json:"price" validate:"min=0"`
	SKU   string          `json:"sku"`
	Stock int             `json:"stock" validate:"min=0"`
}

type DeepCustomizationInput struct {
	Enabled        bool                `json:"enabled"`
	Edition        EditionInput        `json:"edition"`
	HandleShapes   []string            `json:"handle_shapes" validate:"max=5"`
	LaserEngraving LaserEngravingInput `json:"laser_engraving"`
}

type EditionInput struct {
	Heading          string `json:"heading"`
	Subtitle         string `json:"subtitle"`
	ShortDescription string `json:"short_description"`
	Grains           string `json:"grains"`
	Grade            string `json:"grade"`
	GrainDescription string `json:"grain_description"`
}

type LaserEngravingInput struct {
	Enabled  bool            `json:"enabled"`
	Price    decimal.Decimal `json:"price"     validate:"min=0"`
	MaxChars int             `json:"max_chars" validate:"min=0"`
}

// ─── Upload carriers ─────────────────────────────────────────────────────────

// ImageUpload is one raw file lifted out of the multipart form.
type ImageUpload struct {
	Data        []byte
	ContentType string
	Size        int64
	Filename    string
}

// ImageSet groups every image submitted with one product. Variation images
// are keyed by the variation's position in the request.
type ImageSet struct {
	Main       *ImageUpload
	Gallery    []ImageUpload
	Variations map[int]*ImageUpload
	Edition    *ImageUpload
	Laser      *ImageUpload
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// CreateProductResponse returns the persisted record plus any per-image
// upload warnings. A failed image never aborts the save; it is simply absent.
type CreateProductResponse struct {
	Product  model.Product `json:"product"`
	Warnings []string      `json:"warnings,omitempty"`
}

// CatalogSummary mirrors the metric cards of the catalog overview.
type CatalogSummary struct {
	TotalProducts int             `json:"total_products"`
	CricketBats   int             `json:"cricket_bats"`
	InStock       int             `json:"in_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type ProductListResponse struct {
	Data    []model.Product `json:"data"`
	Summary CatalogSummary  `json:"summary"`
}

type SearchResponse struct {
	Data  []model.Product `json:"data"`
	Total int             `json:"total"`
}

// DeleteOutcome reports the two-step confirm flow: the first call marks the
// id pending, the second one actually deletes.
type DeleteOutcome struct {
	ConfirmRequired bool `json:"confirm_required"`
	Deleted         bool `json:"deleted"`
}
