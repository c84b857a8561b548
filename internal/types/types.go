package types

// FileInfo describes a spreadsheet found directly inside a listed folder
type FileInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Size         uint64 `json:"size"`
	IsExcel      bool   `json:"is_excel"`
	LastModified string `json:"last_modified"`
}

// ProcessConfig carries everything forwarded to the external processing program
type ProcessConfig struct {
	InputFolder  string `json:"input_folder" toml:"input_folder" yaml:"input_folder"`
	OutputFolder string `json:"output_folder" toml:"output_folder" yaml:"output_folder"`

	OutlierMethod              string  `json:"outlier_method" toml:"outlier_method" yaml:"outlier_method"`
	BoxplotThresholdDischarge  float64 `json:"boxplot_threshold_discharge" toml:"boxplot_threshold_discharge" yaml:"boxplot_threshold_discharge"`
	BoxplotThresholdEfficiency float64 `json:"boxplot_threshold_efficiency" toml:"boxplot_threshold_efficiency" yaml:"boxplot_threshold_efficiency"`
	ZscoreThresholdDischarge   float64 `json:"zscore_threshold_discharge" toml:"zscore_threshold_discharge" yaml:"zscore_threshold_discharge"`
	ZscoreThresholdEfficiency  float64 `json:"zscore_threshold_efficiency" toml:"zscore_threshold_efficiency" yaml:"zscore_threshold_efficiency"`
	ZscoreMadConstant          float64 `json:"zscore_mad_constant" toml:"zscore_mad_constant" yaml:"zscore_mad_constant"`

	// Optional
	ReferenceChannelMethod string `json:"reference_channel_method,omitempty" toml:"reference_channel_method" yaml:"reference_channel_method"`
	Verbose                bool   `json:"verbose,omitempty" toml:"verbose" yaml:"verbose"`
	EnableProgressBar      bool   `json:"enable_progress_bar,omitempty" toml:"enable_progress_bar" yaml:"enable_progress_bar"`
}

// EffectiveOutputFolder returns the output folder, falling back to the input folder when empty.
func (c ProcessConfig) EffectiveOutputFolder() string {
	if c.OutputFolder == "" {
		return c.InputFolder
	}

	return c.OutputFolder
}
