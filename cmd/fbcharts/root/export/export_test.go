package export_test

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kedarrpandya/foodbridge/cmd/fbcharts/root/export"
	"github.com/kedarrpandya/foodbridge/internal/analytics"
)

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := &analytics.Bundle{Series: &analytics.TimeSeries{
		Labels:  []string{"d1", "d2"},
		Created: []float64{3, 4},
		Claimed: []float64{1, 2},
	}}

	require.NoError(t, export.Run(fs, b, "out.xlsx"))

	file, err := fs.Open("out.xlsx")
	require.NoError(t, err)
	defer file.Close()

	wb, err := excelize.OpenReader(file)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("Series")
	require.NoError(t, err)
	assert.Equal(t, []string{"d2", "4", "2"}, rows[2])
}

func TestRun_Empty(t *testing.T) {
	fs := afero.NewMemMapFs()

	assert.Error(t, export.Run(fs, &analytics.Bundle{}, "out.xlsx"))

	_, err := fs.Stat("out.xlsx")
	assert.True(t, os.IsNotExist(err))
}
