// Package export serializes the product catalog into the downloadable
// formats: pretty JSON, CSV, XLSX and a full-backup JSON bundle.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Mdwaseel/batsdatacollection/internal/model"
)

// AppVersion tags every backup bundle.
const AppVersion = "v2.0"

// backendName identifies the store in backup metadata.
const backendName = "Postgres"

// basicColumns is the fixed column set shared by the CSV export and the
// Products sheet of the XLSX export.
var basicColumns = []string{
	"Product ID", "Product Name", "Type", "SKU", "Regular Price", "Sale Price",
	"Stock Status", "Stock Quantity", "Category", "Weight", "Created At",
}

var batColumns = []string{
	"Product Name", "SKU", "Edition Heading", "Grains", "Grade",
	"Laser Engraving", "Laser Price",
}

// Filename embeds the export timestamp, e.g. products_20260830_153000.csv.
func Filename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}

// ToJSON renders every record, nested payloads included, as a pretty-printed
// array. Timestamps marshal as RFC 3339 strings.
func ToJSON(products []model.Product) ([]byte, error) {
	return json.MarshalIndent(products, "", "  ")
}

// ToCSV renders the basic table with a header row.
func ToCSV(products []model.Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(basicColumns); err != nil {
		return nil, err
	}
	for _, p := range products {
		if err := w.Write(basicRowStrings(p)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToXLSX renders the basic table as a "Products" sheet. When any record is a
// deep-customization bat a second "Bat Customization" sheet is added; with no
// such records the second sheet is omitted entirely.
func ToXLSX(products []model.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const productsSheet = "Products"
	if err := f.SetSheetName("Sheet1", productsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(productsSheet, "A1", &basicColumns); err != nil {
		return nil, err
	}
	for i, p := range products {
		row := basicRowValues(p)
		if err := f.SetSheetRow(productsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	bats := batsOnly(products)
	if len(bats) > 0 {
		const batSheet = "Bat Customization"
		if _, err := f.NewSheet(batSheet); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(batSheet, "A1", &batColumns); err != nil {
			return nil, err
		}
		for i, p := range bats {
			row := batRowValues(p)
			if err := f.SetSheetRow(batSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Backup is the full-backup JSON bundle: metadata, every record, and
// aggregate statistics.
type Backup struct {
	BackupInfo BackupInfo      `json:"backup_info"`
	Products   []model.Product `json:"products"`
	Statistics Statistics      `json:"statistics"`
}

type BackupInfo struct {
	CreatedAt     string `json:"created_at"`
	TotalProducts int    `json:"total_products"`
	AppVersion    string `json:"app_version"`
	Database      string `json:"database"`
}

type Statistics struct {
	ByType     map[string]int  `json:"by_type"`
	ByStock    map[string]int  `json:"by_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ToFullBackup renders the backup bundle as pretty-printed JSON.
func ToFullBackup(products []model.Product) ([]byte, error) {
	b := Backup{
		BackupInfo: BackupInfo{
			CreatedAt:     time.Now().Format(time.RFC3339),
			TotalProducts: len(products),
			AppVersion:    AppVersion,
			Database:      backendName,
		},
		Products:   products,
		Statistics: Stats(products),
	}
	return json.MarshalIndent(b, "", "  ")
}

// Stats aggregates counts by type and stock status plus the summed regular
// prices. Also feeds the catalog summary endpoint.
func Stats(products []model.Product) Statistics {
	s := Statistics{
		ByType:     make(map[string]int),
		ByStock:    make(map[string]int),
		TotalValue: decimal.Zero,
	}
	for _, p := range products {
		s.ByType[string(p.ProductType)]++
		if p.StockStatus != "" {
			s.ByStock[string(p.StockStatus)]++
		}
		s.TotalValue = s.TotalValue.Add(p.RegularPrice)
	}
	return s
}

// ─── Row builders ────────────────────────────────────────────────────────────

func createdDate(p model.Product) string {
	ts := p.CreatedAt.Format(time.RFC3339)
	if len(ts) < 10 {
		return ts
	}
	// Date portion only.
	return ts[:10]
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func basicRowStrings(p model.Product) []string {
	return []string{
		p.ID.String(),
		p.ProductName,
		string(p.ProductType),
		p.SKU,
		p.RegularPrice.String(),
		decimalOrZero(p.SalePrice).String(),
		string(p.StockStatus),
		strconv.Itoa(p.StockQuantity),
		p.Category,
		decimalOrZero(p.Weight).String(),
		createdDate(p),
	}
}

func basicRowValues(p model.Product) []interface{} {
	return []interface{}{
		p.ID.String(),
		p.ProductName,
		string(p.ProductType),
		p.SKU,
		p.RegularPrice.InexactFloat64(),
		decimalOrZero(p.SalePrice).InexactFloat64(),
		string(p.StockStatus),
		p.StockQuantity,
		p.Category,
		decimalOrZero(p.Weight).InexactFloat64(),
		createdDate(p),
	}
}

func batsOnly(products []model.Product) []model.Product {
	var bats []model.Product
	for _, p := range products {
		if p.ProductType == model.TypeDeepCustomization && p.DeepCustomization != nil {
			bats = append(bats, p)
		}
	}
	return bats
}

func batRowValues(p model.Product) []interface{} {
	dc := p.Customization()
	laser := "No"
	if dc.LaserEngraving.Enabled {
		laser = "Yes"
	}
	return []interface{}{
		p.ProductName,
		p.SKU,
		dc.Edition.Heading,
		dc.Edition.Grains,
		dc.Edition.Grade,
		laser,
		dc.LaserEngraving.Price.InexactFloat64(),
	}
}
