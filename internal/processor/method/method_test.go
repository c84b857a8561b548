package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlier(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		thresholds  int
		expectError bool
	}{
		{name: "boxplot", token: "boxplot", thresholds: 2},
		{name: "zscore mad", token: "zscore_mad", thresholds: 3},
		{name: "unknown", token: "iqr", expectError: true},
		{name: "empty", token: "", expectError: true},
		{name: "case matters", token: "Boxplot", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Outlier(tt.token)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown outlier method")
				assert.Contains(t, err.Error(), "boxplot zscore_mad")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, m.Name)
			assert.Len(t, m.Thresholds, tt.thresholds)
		})
	}
}

func TestReferenceChannel(t *testing.T) {
	for _, token := range []string{"traditional", "pca", "retention_curve_mse"} {
		m, err := ReferenceChannel(token)
		require.NoError(t, err)
		assert.Equal(t, token, m.Name)
		assert.Empty(t, m.Thresholds)
	}

	_, err := ReferenceChannel("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown reference channel method")
}

func TestAll(t *testing.T) {
	c := All()

	require.Len(t, c.Outlier, 2)
	assert.Equal(t, "boxplot", c.Outlier[0].Name)
	assert.Equal(t, "zscore_mad", c.Outlier[1].Name)

	require.Len(t, c.ReferenceChannel, 3)
	assert.Equal(t, "pca", c.ReferenceChannel[0].Name)
	assert.Equal(t, "retention_curve_mse", c.ReferenceChannel[1].Name)
	assert.Equal(t, "traditional", c.ReferenceChannel[2].Name)
}
