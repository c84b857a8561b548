package processor

import (
	"strconv"

	"battery-analyzer/internal/types"
)

// FormatFloat renders the shortest decimal form that parses back to v, never in exponent notation.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildArgs turns a config into the external program's flags in their fixed order.
// EnableProgressBar is never forwarded.
func BuildArgs(cfg types.ProcessConfig) []string {
	args := []string{
		"--input_folder", cfg.InputFolder,
		"--output_folder", cfg.EffectiveOutputFolder(),
		"--outlier_method", cfg.OutlierMethod,
		"--reference_channel_method", cfg.ReferenceChannelMethod,
		"--boxplot_threshold_discharge", FormatFloat(cfg.BoxplotThresholdDischarge),
		"--boxplot_threshold_efficiency", FormatFloat(cfg.BoxplotThresholdEfficiency),
		"--zscore_threshold_discharge", FormatFloat(cfg.ZscoreThresholdDischarge),
		"--zscore_threshold_efficiency", FormatFloat(cfg.ZscoreThresholdEfficiency),
		"--zscore_mad_constant", FormatFloat(cfg.ZscoreMadConstant),
	}

	if cfg.Verbose {
		args = append(args, "--verbose")
	}

	return args
}
