package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/guttosm/parcel-service/internal/render"
	"github.com/guttosm/parcel-service/internal/service"
	"github.com/guttosm/parcel-service/internal/sheet"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newPackCommand(o *options) *cobra.Command {
	var (
		xlsxOut string
		htmlOut string
	)
	cmd := &cobra.Command{
		Use:   "pack WORKBOOK...",
		Short: "Pack the items of one or more workbooks",
		Long: `Pack reads every workbook concurrently and prints the smallest bounding box
found for each. Results of a single workbook can be exported with --xlsx
and --html.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (xlsxOut != "" || htmlOut != "") && len(args) > 1 {
				return errors.New("--xlsx and --html need exactly one workbook")
			}
			s, err := o.services()
			if err != nil {
				return err
			}

			results := packFiles(cmd.Context(), s.Calculator, args)
			if len(results) == 1 && results[0].Err == "" {
				if err := export(results[0], xlsxOut, htmlOut); err != nil {
					return err
				}
			}
			if err := o.print(cmd.OutOrStdout(), results...); err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != "" {
					return fmt.Errorf("%s: %s", r.File, r.Err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "write the placements to this workbook")
	cmd.Flags().StringVar(&htmlOut, "html", "", "write a 3D chart of the placements to this file")
	return cmd
}

// packFiles packs each workbook on its own goroutine. Failures are kept
// per file so one bad workbook does not hide the others.
func packFiles(ctx context.Context, calc service.ParcelCalculator, paths []string) []fileResult {
	results := make([]fileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = packFile(ctx, calc, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func packFile(ctx context.Context, calc service.ParcelCalculator, path string) fileResult {
	r := fileResult{File: path}
	s, err := sheet.ReadFile(path)
	if err != nil {
		r.Err = err.Error()
		return r
	}
	r.Warnings = s.Warnings
	res, err := calc.Pack(ctx, s.Items(), nil)
	if err != nil {
		r.Err = err.Error()
		return r
	}
	r.Result = res
	return r
}

func export(r fileResult, xlsxOut, htmlOut string) error {
	if xlsxOut != "" {
		if err := writeFile(xlsxOut, func(f *os.File) error { return sheet.WriteResult(f, r.Result) }); err != nil {
			return err
		}
	}
	if htmlOut != "" {
		if err := writeFile(htmlOut, func(f *os.File) error { return render.Result(f, r.Result, r.File) }); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
