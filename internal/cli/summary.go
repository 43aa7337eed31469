package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guttosm/parcel-service/internal/packing"
)

type fileResult struct {
	File     string         `json:"file"`
	Result   packing.Result `json:"result"`
	Warnings []string       `json:"warnings,omitempty"`
	Err      string         `json:"error,omitempty"`
}

func outcomeLabel(o packing.Outcome) string {
	if o == packing.OutcomePacked {
		return packedStyle.Render(string(o))
	}
	return fallbackStyle.Render(string(o))
}

func summarize(r fileResult) string {
	if r.Err != "" {
		return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(r.File),
			errorStyle.Render(r.Err),
		))
	}

	d := r.Result.Dimensions
	line := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}
	lines := []string{
		titleStyle.Render(r.File),
		line("outcome", outcomeLabel(r.Result.Outcome)),
		line("box", fmt.Sprintf("%.1f x %.1f x %.1f cm", d.LengthCm, d.WidthCm, d.HeightCm)),
		line("size sum", fmt.Sprintf("%.1f cm", d.SizeSum())),
		line("weight", fmt.Sprintf("%d g", d.WeightG)),
		line("items", fmt.Sprintf("%d", d.ItemCount)),
	}
	if r.Result.Container != "" {
		lines = append(lines, line("container", r.Result.Container))
	}
	if r.Result.Strategy != "" {
		lines = append(lines, line("strategy", r.Result.Strategy))
	}
	for _, w := range r.Warnings {
		lines = append(lines, fallbackStyle.Render("! ")+w)
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (o *options) print(w io.Writer, results ...fileResult) error {
	if o.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	}
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = summarize(r)
	}
	_, err := fmt.Fprintln(w, strings.Join(blocks, "\n"))
	return err
}
