package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/parcel-service/config"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testConfig() config.Config {
	return config.Config{
		Log:     config.LogConfig{Level: "error"},
		Packing: config.PackingConfig{PlacerTimeout: time.Second, MaxItems: 50},
		Auth:    config.AuthConfig{JWTSecretKey: "cli-test-secret"},
	}
}

func writeWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(f.GetSheetName(0), ref, &row))
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func hobbyCart(t *testing.T) string {
	return writeWorkbook(t, "cart.xlsx", [][]interface{}{
		{"id", "name", "category", "length", "width", "height", "weight", "qty"},
		{6, "Card Case", "hobby", 10, 7, 2, 25, 2},
		{7, "Acrylic Stand", "hobby", 12, 8, 1, 40, 1},
	})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(testConfig())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
