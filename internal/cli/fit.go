package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/spf13/cobra"
)

// ErrDoesNotFit makes fit exit non-zero when the items exceed the container.
var ErrDoesNotFit = errors.New("items do not fit the container")

// parseEnvelope parses "[name:]LxWxH" in centimeters.
func parseEnvelope(s string) (packing.Container, error) {
	name, dims, ok := strings.Cut(s, ":")
	if !ok {
		name, dims = "custom", s
	}
	sides := strings.Split(strings.ToLower(dims), "x")
	if len(sides) != 3 {
		return packing.Container{}, fmt.Errorf("container %q: want LxWxH in centimeters", s)
	}
	var mm [3]int
	for i, side := range sides {
		v, err := strconv.ParseFloat(strings.TrimSpace(side), 64)
		if err != nil || v <= 0 {
			return packing.Container{}, fmt.Errorf("container %q: side %q must be positive", s, side)
		}
		mm[i] = packing.ToMM(v)
	}
	return packing.Container{Name: strings.TrimSpace(name), Length: mm[0], Width: mm[1], Height: mm[2]}, nil
}

func newFitCommand(o *options) *cobra.Command {
	var envelope string
	cmd := &cobra.Command{
		Use:   "fit WORKBOOK",
		Short: "Check whether a workbook's items fit a container",
		Example: `  parcelctl fit cart.xlsx --container Nekoposu:31.2x22.8x3
  parcelctl fit cart.xlsx --container 25x20x5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := parseEnvelope(envelope)
			if err != nil {
				return err
			}
			s, err := o.services()
			if err != nil {
				return err
			}
			wb, err := readWorkbook(args[0])
			if err != nil {
				return err
			}

			res, fits, err := s.Calculator.Fit(cmd.Context(), wb.Items(), container)
			if err != nil {
				return err
			}
			if err := o.print(cmd.OutOrStdout(), fileResult{File: args[0], Result: res, Warnings: wb.Warnings}); err != nil {
				return err
			}
			if !fits {
				return fmt.Errorf("%s: %w", container.Name, ErrDoesNotFit)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&envelope, "container", "", `container as "[name:]LxWxH" in centimeters`)
	_ = cmd.MarkFlagRequired("container")
	return cmd
}
