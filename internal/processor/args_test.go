package processor

import (
	"strconv"
	"testing"

	"battery-analyzer/internal/types"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func sampleConfig() types.ProcessConfig {
	return types.ProcessConfig{
		InputFolder:                "/data/in",
		OutputFolder:               "",
		OutlierMethod:              "boxplot",
		BoxplotThresholdDischarge:  1.5,
		BoxplotThresholdEfficiency: 2.0,
		ZscoreThresholdDischarge:   3.0,
		ZscoreThresholdEfficiency:  3.5,
		ZscoreMadConstant:          1.4826,
		ReferenceChannelMethod:     "",
		Verbose:                    true,
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(c *types.ProcessConfig)
		expected []string
	}{
		{
			name:   "empty output folder falls back to input with verbose",
			modify: func(c *types.ProcessConfig) {},
			expected: []string{
				"--input_folder", "/data/in",
				"--output_folder", "/data/in",
				"--outlier_method", "boxplot",
				"--reference_channel_method", "",
				"--boxplot_threshold_discharge", "1.5",
				"--boxplot_threshold_efficiency", "2",
				"--zscore_threshold_discharge", "3",
				"--zscore_threshold_efficiency", "3.5",
				"--zscore_mad_constant", "1.4826",
				"--verbose",
			},
		},
		{
			name: "explicit output folder without verbose",
			modify: func(c *types.ProcessConfig) {
				c.OutputFolder = "/data/out"
				c.OutlierMethod = "zscore_mad"
				c.ReferenceChannelMethod = "pca"
				c.Verbose = false
				c.EnableProgressBar = true
			},
			expected: []string{
				"--input_folder", "/data/in",
				"--output_folder", "/data/out",
				"--outlier_method", "zscore_mad",
				"--reference_channel_method", "pca",
				"--boxplot_threshold_discharge", "1.5",
				"--boxplot_threshold_efficiency", "2",
				"--zscore_threshold_discharge", "3",
				"--zscore_threshold_efficiency", "3.5",
				"--zscore_mad_constant", "1.4826",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.modify(&cfg)

			assert.Equal(t, tt.expected, BuildArgs(cfg))
		})
	}
}

func TestBuildArgs_DoesNotMutateConfig(t *testing.T) {
	cfg := sampleConfig()
	before := cfg

	BuildArgs(cfg)

	assert.Equal(t, before, cfg)
	assert.Empty(t, cfg.OutputFolder)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{2.0, "2"},
		{1.5, "1.5"},
		{0.6745, "0.6745"},
		{1e21, "1000000000000000000000"},
		{1e-7, "0.0000001"},
		{-3.25, "-3.25"},
		{0.1 + 0.2, "0.30000000000000004"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.in))
		})
	}
}

var flagOrder = []string{
	"--input_folder",
	"--output_folder",
	"--outlier_method",
	"--reference_channel_method",
	"--boxplot_threshold_discharge",
	"--boxplot_threshold_efficiency",
	"--zscore_threshold_discharge",
	"--zscore_threshold_efficiency",
	"--zscore_mad_constant",
}

func TestBuildArgs_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genConfig := gopter.CombineGens(
		gen.AnyString(),
		gen.AnyString(),
		gen.Identifier(),
		gen.Identifier(),
		gen.SliceOfN(5, gen.Float64()),
		gen.Bool(),
		gen.Bool(),
	).Map(func(v []any) types.ProcessConfig {
		floats := v[4].([]float64)
		return types.ProcessConfig{
			InputFolder:                v[0].(string),
			OutputFolder:               v[1].(string),
			OutlierMethod:              v[2].(string),
			ReferenceChannelMethod:     v[3].(string),
			BoxplotThresholdDischarge:  floats[0],
			BoxplotThresholdEfficiency: floats[1],
			ZscoreThresholdDischarge:   floats[2],
			ZscoreThresholdEfficiency:  floats[3],
			ZscoreMadConstant:          floats[4],
			Verbose:                    v[5].(bool),
			EnableProgressBar:          v[6].(bool),
		}
	})

	properties.Property("flags appear once in fixed order", prop.ForAll(
		func(cfg types.ProcessConfig) bool {
			args := BuildArgs(cfg)

			expectedLen := 2 * len(flagOrder)
			if cfg.Verbose {
				expectedLen++
			}
			if len(args) != expectedLen {
				return false
			}

			for i, flag := range flagOrder {
				if args[2*i] != flag {
					return false
				}
			}

			return !cfg.Verbose || args[len(args)-1] == "--verbose"
		},
		genConfig,
	))

	properties.Property("progress bar is never forwarded", prop.ForAll(
		func(cfg types.ProcessConfig) bool {
			cfg.EnableProgressBar = true
			with := BuildArgs(cfg)
			cfg.EnableProgressBar = false
			without := BuildArgs(cfg)

			if len(with) != len(without) {
				return false
			}
			for i := range with {
				if with[i] != without[i] || with[i] == "--enable_progress_bar" {
					return false
				}
			}

			return true
		},
		genConfig,
	))

	properties.Property("numeric values round-trip", prop.ForAll(
		func(cfg types.ProcessConfig) bool {
			args := BuildArgs(cfg)
			values := []float64{
				cfg.BoxplotThresholdDischarge,
				cfg.BoxplotThresholdEfficiency,
				cfg.ZscoreThresholdDischarge,
				cfg.ZscoreThresholdEfficiency,
				cfg.ZscoreMadConstant,
			}

			for i, want := range values {
				got, err := strconv.ParseFloat(args[9+2*i], 64)
				if err != nil || got != want {
					return false
				}
			}

			return true
		},
		genConfig,
	))

	properties.Property("output folder resolves to input when empty", prop.ForAll(
		func(cfg types.ProcessConfig) bool {
			args := BuildArgs(cfg)
			if cfg.OutputFolder == "" {
				return args[3] == cfg.InputFolder
			}

			return args[3] == cfg.OutputFolder
		},
		genConfig,
	))

	properties.TestingRun(t)
}
