package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductType discriminates the three record shapes. Exactly one of
// Variations / DeepCustomization may be populated, selected by this tag.
type ProductType string

const (
	TypeSimple            ProductType = "simple"
	TypeVariable          ProductType = "variable"
	TypeDeepCustomization ProductType = "deep_customization"
)

// StockStatus is the enumerated availability state of a product.
type StockStatus string

const (
	InStock     StockStatus = "in_stock"
	OutOfStock  StockStatus = "out_of_stock"
	OnBackorder StockStatus = "on_backorder"
)

// Variation is one sub-record of a variable product (e.g. "Size: Large").
// Order within a product is insertion order and must survive round-trips.
type Variation struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	SKU   string          `json:"sku"`
	Stock int             `json:"stock"`
	Image *StoredAsset    `json:"image"`
}

// Edition carries the marketing metadata of a deep-customization bat.
type Edition struct {
	Heading          string       `json:"heading"`
	Subtitle         string       `json:"subtitle"`
	ShortDescription string       `json:"short_description"`
	Grains           string       `json:"grains"`
	Grade            string       `json:"grade"`
	GrainDescription string       `json:"grain_description"`
	Image            *StoredAsset `json:"image"`
}

// HandleShape is one selectable handle-shape label.
type HandleShape struct {
	Label string `json:"label"`
}

// LaserEngraving holds the engraving offer attached to a bat.
type LaserEngraving struct {
	Enabled  bool            `json:"enabled"`
	Price    decimal.Decimal `json:"price"`
	MaxChars int             `json:"max_chars"`
	Image    *StoredAsset    `json:"image"`
}

// DeepCustomization is the cricket-bat-specific option set.
type DeepCustomization struct {
	Enabled        bool           `json:"enabled"`
	Edition        Edition        `json:"edition"`
	HandleShapes   []HandleShape  `json:"handle_shapes"`
	LaserEngraving LaserEngraving `json:"laser_engraving"`
}

// Product is one catalog entry. Variant payloads live in JSONB columns so the
// nested shapes survive persistence without join tables.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProductName string      `gorm:"index;not null" json:"product_name"`
	ProductType ProductType `gorm:"index;not null" json:"product_type"`
	SKU         string      `gorm:"index" json:"sku"`

	RegularPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"regular_price"`
	// SalePrice and Weight are pointers so that "not provided" is stored as
	// NULL rather than an explicit zero.
	SalePrice *decimal.Decimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	Weight    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"weight"`

	StockStatus   StockStatus `json:"stock_status"`
	StockQuantity int         `json:"stock_quantity"`

	Category         string `json:"category"`
	ShortDescription string `json:"short_description"`
	FullDescription  string `json:"full_description"`

	MainImage     *datatypes.JSONType[StoredAsset] `gorm:"type:jsonb" json:"main_image"`
	GalleryImages datatypes.JSONSlice[StoredAsset] `gorm:"type:jsonb" json:"gallery_images"`

	// Exactly one of the next two is non-nil, per ProductType.
	Variations        datatypes.JSONSlice[Variation]         `gorm:"type:jsonb" json:"variations"`
	DeepCustomization *datatypes.JSONType[DeepCustomization] `gorm:"type:jsonb" json:"deep_customization"`

	// ProductData is a free-form metadata blob reserved for forward-compatible
	// extension; no component interprets it.
	ProductData datatypes.JSONMap `gorm:"type:jsonb" json:"product_data"`
}

func (Product) TableName() string { return "products" }

// Invariant checks the variant one-of rule: the payload matching ProductType
// may be set, the other must be absent.
func (p *Product) Invariant() error {
	switch p.ProductType {
	case TypeSimple:
		if p.Variations != nil || p.DeepCustomization != nil {
			return fmt.Errorf("simple product %q carries a variant payload", p.ProductName)
		}
	case TypeVariable:
		if p.DeepCustomization != nil {
			return fmt.Errorf("variable product %q carries a deep-customization payload", p.ProductName)
		}
	case TypeDeepCustomization:
		if p.Variations != nil {
			return fmt.Errorf("deep-customization product %q carries variations", p.ProductName)
		}
	default:
		return fmt.Errorf("unknown product type %q", p.ProductType)
	}
	return nil
}

// MainAsset unwraps the main image descriptor, nil when absent.
func (p *Product) MainAsset() *StoredAsset {
	if p.MainImage == nil {
		return nil
	}
	a := p.MainImage.Data()
	return &a
}

// Customization unwraps the deep-customization payload, nil when absent.
func (p *Product) Customization() *DeepCustomization {
	if p.DeepCustomization == nil {
		return nil
	}
	d := p.DeepCustomization.Data()
	return &d
}
