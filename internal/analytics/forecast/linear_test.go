package forecast

import (
	"testing"

	"github.com/eskmag/greenpulse/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinear_PerfectLine(t *testing.T) {
	data := generateLinearSeries(2010, 2020, 100, -2)

	model, err := FitLinear(data)
	require.NoError(t, err)

	assert.InDelta(t, -2.0, model.Slope, 1e-9)
	assert.InDelta(t, 78.0, model.Predict(2021), 1e-6)
	assert.InDelta(t, 100.0, model.Predict(2010), 1e-6)

	for i, p := range data {
		assert.InDelta(t, p.Value, model.fitted[i], 1e-6)
	}
}

func TestFitLinear_TwoPoints(t *testing.T) {
	model, err := FitLinear(analytics.TimeSeriesData{{Year: 2000, Value: 10}, {Year: 2004, Value: 2}})
	require.NoError(t, err)

	assert.InDelta(t, -2.0, model.Slope, 1e-9)
	assert.InDelta(t, 0.0, model.Predict(2005), 1e-6)
}

func TestFitLinear_InsufficientPoints(t *testing.T) {
	_, err := FitLinear(analytics.TimeSeriesData{{Year: 2000, Value: 10}})
	assert.ErrorIs(t, err, analytics.ErrInsufficientHistory)

	_, err = FitLinear(nil)
	assert.ErrorIs(t, err, analytics.ErrInsufficientHistory)
}

func TestLinearModel_Info(t *testing.T) {
	data := generateLinearSeries(2012, 2022, 50, 1.5)

	model, err := FitLinear(data)
	require.NoError(t, err)

	info := model.Info()
	assert.Equal(t, "linear", info.Algorithm)
	assert.Equal(t, 2012, info.WindowStart)
	assert.Equal(t, 2022, info.WindowEnd)
	assert.Equal(t, 11, info.DataPoints)
	assert.InDelta(t, 1.5, info.Slope, 1e-9)
	assert.Less(t, info.RMSE, 1e-6)
	assert.Less(t, info.MAE, 1e-6)
}
