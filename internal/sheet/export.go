package sheet

import (
	"fmt"
	"io"

	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	placementsSheet = "Placements"
)

var placementHeader = []interface{}{"name", "x_cm", "y_cm", "z_cm", "width_cm", "depth_cm", "height_cm", "color"}

// WriteResult writes res as a workbook with a summary sheet and one
// placement per row on a second sheet.
func WriteResult(w io.Writer, res packing.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]interface{}{
		{"outcome", string(res.Outcome)},
		{"strategy", res.Strategy},
		{"container", res.Container},
		{"length_cm", res.Dimensions.LengthCm},
		{"width_cm", res.Dimensions.WidthCm},
		{"height_cm", res.Dimensions.HeightCm},
		{"size_sum_cm", res.Dimensions.SizeSum()},
		{"weight_g", res.Dimensions.WeightG},
		{"item_count", res.Dimensions.ItemCount},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(placementsSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	if err := setRow(f, placementsSheet, 1, placementHeader); err != nil {
		return err
	}
	for i, p := range res.Placements {
		row := []interface{}{
			p.Name,
			packing.ToCM(p.X), packing.ToCM(p.Y), packing.ToCM(p.Z),
			packing.ToCM(p.Width), packing.ToCM(p.Depth), packing.ToCM(p.Height),
			p.Color,
		}
		if err := setRow(f, placementsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	ref, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, ref, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
