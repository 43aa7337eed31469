// Package sheet reads item and product lists from spreadsheets and writes
// packing results back out. Header names are matched case-insensitively
// against English and Japanese aliases.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guttosm/parcel-service/internal/domain/dto"
	"github.com/guttosm/parcel-service/internal/domain/model"
	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned for a sheet without data rows.
var ErrNoRows = errors.New("sheet has no data rows")

// Row is one spreadsheet line in centimeters and grams.
type Row struct {
	ID       int
	Name     string
	NameJa   string
	Category string
	LengthCm float64
	WidthCm  float64
	HeightCm float64
	WeightG  int
	Quantity int
}

// Product converts the row to a catalog product.
func (r Row) Product() model.Product {
	return model.Product{
		ID:       r.ID,
		Category: r.Category,
		Name:     r.Name,
		NameJa:   r.NameJa,
		LengthCm: r.LengthCm,
		WidthCm:  r.WidthCm,
		HeightCm: r.HeightCm,
		WeightG:  r.WeightG,
	}
}

// Sheet is a parsed spreadsheet. Rows that could not be read are skipped
// and reported in Warnings.
type Sheet struct {
	Rows     []Row
	Warnings []string
}

// Items expands every row into Quantity packing items.
func (s *Sheet) Items() []packing.Item {
	var items []packing.Item
	for _, r := range s.Rows {
		it := r.Product().Item()
		for i := 0; i < r.Quantity; i++ {
			items = append(items, it)
		}
	}
	return items
}

// Products returns the rows as catalog products. Every row needs a
// positive, unique ID.
func (s *Sheet) Products() ([]model.Product, error) {
	seen := make(map[int]bool, len(s.Rows))
	out := make([]model.Product, 0, len(s.Rows))
	for _, r := range s.Rows {
		if r.ID <= 0 {
			return nil, fmt.Errorf("product %q: missing id", r.Name)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("product %q: duplicate id %d", r.Name, r.ID)
		}
		seen[r.ID] = true
		out = append(out, r.Product())
	}
	return out, nil
}

type column int

const (
	colID column = iota
	colName
	colNameJa
	colCategory
	colLength
	colWidth
	colHeight
	colWeight
	colQuantity
	numColumns
)

var headerAliases = map[column][]string{
	colID:       {"id", "product_id", "product id"},
	colName:     {"name", "item", "product", "description"},
	colNameJa:   {"name_ja", "japanese name", "商品名"},
	colCategory: {"category", "カテゴリ"},
	colLength:   {"length", "length_cm", "l", "縦"},
	colWidth:    {"width", "width_cm", "w", "横"},
	colHeight:   {"height", "height_cm", "h", "高さ"},
	colWeight:   {"weight", "weight_g", "重量"},
	colQuantity: {"quantity", "qty", "count", "数量"},
}

var requiredColumns = []struct {
	col  column
	name string
}{{colName, "name"}, {colLength, "length"}, {colWidth, "width"}, {colHeight, "height"}}

type mapping [numColumns]int

func detectColumns(header []string) (mapping, error) {
	var m mapping
	for i := range m {
		m[i] = -1
	}
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for col, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && m[col] == -1 {
					m[col] = i
				}
			}
		}
	}

	var missing []string
	for _, req := range requiredColumns {
		if m[req.col] == -1 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return m, fmt.Errorf("required columns not found in header: %s", strings.Join(missing, ", "))
	}
	return m, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRow(row []string, m mapping) (Row, error) {
	r := Row{
		Name:     cell(row, m[colName]),
		NameJa:   cell(row, m[colNameJa]),
		Category: cell(row, m[colCategory]),
		Quantity: 1,
	}
	if r.Name == "" {
		return r, errors.New("name is empty")
	}

	dims := []struct {
		col column
		dst *float64
	}{{colLength, &r.LengthCm}, {colWidth, &r.WidthCm}, {colHeight, &r.HeightCm}}
	for _, d := range dims {
		v, err := strconv.ParseFloat(cell(row, m[d.col]), 64)
		if err != nil || v < 0 {
			return r, fmt.Errorf("invalid dimension %q", cell(row, m[d.col]))
		}
		*d.dst = v
	}

	ints := []struct {
		col column
		dst *int
	}{{colID, &r.ID}, {colWeight, &r.WeightG}, {colQuantity, &r.Quantity}}
	for _, f := range ints {
		s := cell(row, m[f.col])
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return r, fmt.Errorf("invalid number %q", s)
		}
		*f.dst = v
	}
	if r.Quantity > dto.MaxQuantity {
		return r, fmt.Errorf("quantity %d exceeds %d", r.Quantity, dto.MaxQuantity)
	}
	return r, nil
}

// Read parses the first sheet of an xlsx workbook.
func Read(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readFile(f)
}

// ReadFile parses the first sheet of the workbook at path.
func ReadFile(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readFile(f)
}

func readFile(f *excelize.File) (*Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	m, err := detectColumns(rows[0])
	if err != nil {
		return nil, err
	}

	s := &Sheet{}
	for i, row := range rows[1:] {
		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}
		r, err := parseRow(row, m)
		if err != nil {
			s.Warnings = append(s.Warnings, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		s.Rows = append(s.Rows, r)
	}
	if len(s.Rows) == 0 {
		return s, ErrNoRows
	}
	return s, nil
}
