package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/parcel-service/internal/repository"
	"github.com/spf13/cobra"
)

func newImportCommand(o *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import WORKBOOK",
		Short: "Upsert a product workbook into the MongoDB catalog",
		Long: `Import reads products from a workbook with an id column and upserts them into
the products collection configured by MONGODB_URI and MONGODB_DATABASE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := readWorkbook(args[0])
			if err != nil {
				return err
			}
			products, err := wb.Products()
			if err != nil {
				return err
			}
			for _, w := range wb.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), fallbackStyle.Render("! ")+w)
			}
			if dryRun {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %d products\n", titleStyle.Render("would import"), len(products))
				return err
			}

			db, err := repository.NewMongoDB(o.cfg.Database.URI, o.cfg.Database.DatabaseName)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = db.Close(ctx)
			}()

			if err := repository.NewProductRepository(db).Upsert(cmd.Context(), products); err != nil {
				return fmt.Errorf("import products: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d products into %s\n",
				packedStyle.Render("imported"), len(products), o.cfg.Database.DatabaseName)
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the workbook without writing")
	return cmd
}
