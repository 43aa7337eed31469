package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/parcel-service/internal/render"
	"github.com/guttosm/parcel-service/internal/sheet"
	"github.com/spf13/cobra"
)

func readWorkbook(path string) (*sheet.Sheet, error) {
	s, err := sheet.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func newRenderCommand(o *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render WORKBOOK",
		Short: "Pack a workbook and write an interactive 3D chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.services()
			if err != nil {
				return err
			}
			r := packFile(cmd.Context(), s.Calculator, args[0])
			if r.Err != "" {
				return fmt.Errorf("%s: %s", r.File, r.Err)
			}
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".html"
			}
			if err := writeFile(out, func(f *os.File) error { return render.Result(f, r.Result, filepath.Base(args[0])) }); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("wrote "+out))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "HTML file to write (default: WORKBOOK with .html)")
	return cmd
}
