// Package cli implements parcelctl, the operator command line for the
// parcel service.
package cli

import (
	"context"

	"github.com/guttosm/parcel-service/config"
	"github.com/guttosm/parcel-service/internal/app"
	"github.com/guttosm/parcel-service/internal/logger"
	"github.com/spf13/cobra"
)

type options struct {
	cfg        config.Config
	containers string
	jsonOutput bool
}

// NewRootCommand builds the parcelctl command tree around cfg.
func NewRootCommand(cfg config.Config) *cobra.Command {
	o := &options{cfg: cfg}
	root := &cobra.Command{
		Use:   "parcelctl",
		Short: "Estimate parcel sizes from item spreadsheets",
		Long: `parcelctl packs item lists read from xlsx workbooks with the same engine
the parcel service runs, imports product catalogs into MongoDB and issues
API tokens.

Workbooks need name, length, width and height columns in centimeters;
weight, quantity, category and id are optional.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init(o.cfg.Log.Level, true)
		},
	}
	root.PersistentFlags().StringVar(&o.containers, "containers", "", `container hypotheses as "name:LxWxH;..." in millimeters`)
	root.PersistentFlags().BoolVar(&o.jsonOutput, "json", false, "print JSON instead of a summary")

	root.AddCommand(
		newPackCommand(o),
		newFitCommand(o),
		newRenderCommand(o),
		newImportCommand(o),
		newTokenCommand(o),
		newSecretCommand(),
	)
	return root
}

// Execute runs parcelctl with the environment configuration.
func Execute(ctx context.Context) error {
	return NewRootCommand(config.Load()).ExecuteContext(ctx)
}

// services builds the calculator, applying --containers over the
// configured hypotheses.
func (o *options) services() (*app.ServiceComponents, error) {
	cfg := o.cfg
	if o.containers != "" {
		cs, err := config.ParseContainers(o.containers)
		if err != nil {
			return nil, err
		}
		cfg.Packing.Containers = cs
	}
	return app.InitializeServices(cfg), nil
}
