package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"battery-analyzer/internal/processor/method"
	"battery-analyzer/internal/types"
)

const (
	// MaxBodySize limits JSON request bodies to 1MB
	MaxBodySize = 1024 * 1024
	// MaxThreshold bounds every numeric parameter
	MaxThreshold = 1e6
)

var (
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrInvalidRequest    = errors.New("invalid request")
)

// SanitizeFolderPath trims whitespace and the quotes added by "copy as path" in file managers
func SanitizeFolderPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 && (p[0] == '"' || p[0] == '\'') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}

	return p
}

// ValidateFolderPath rejects empty paths and paths containing NUL bytes
func ValidateFolderPath(p, fieldName string) error {
	if p == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidParameters, fieldName)
	}

	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: %s contains invalid characters", ErrInvalidParameters, fieldName)
	}

	return nil
}

// ValidateFloatInput validates float input within bounds
func ValidateFloatInput(value, min, max float64, fieldName string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidParameters, fieldName)
	}

	if value < min {
		return fmt.Errorf("%w: %s must be at least %g", ErrInvalidParameters, fieldName, min)
	}

	if value > max {
		return fmt.Errorf("%w: %s must be at most %g", ErrInvalidParameters, fieldName, max)
	}

	return nil
}

// RequiredProcessFields are the ProcessConfig keys a request body must carry
var RequiredProcessFields = []string{
	"input_folder",
	"output_folder",
	"outlier_method",
	"boxplot_threshold_discharge",
	"boxplot_threshold_efficiency",
	"zscore_threshold_discharge",
	"zscore_threshold_efficiency",
	"zscore_mad_constant",
}

// CheckRequiredFields reports every required key that is absent or null in raw.
// An empty output_folder is present and therefore accepted.
func CheckRequiredFields(raw map[string]json.RawMessage) error {
	var missing []string

	for _, name := range RequiredProcessFields {
		v, ok := raw[name]
		if !ok || string(v) == "null" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidParameters, strings.Join(missing, ", "))
	}

	return nil
}

func thresholds(cfg *types.ProcessConfig) map[string]float64 {
	return map[string]float64{
		"boxplot_threshold_discharge":  cfg.BoxplotThresholdDischarge,
		"boxplot_threshold_efficiency": cfg.BoxplotThresholdEfficiency,
		"zscore_threshold_discharge":   cfg.ZscoreThresholdDischarge,
		"zscore_threshold_efficiency":  cfg.ZscoreThresholdEfficiency,
		"zscore_mad_constant":          cfg.ZscoreMadConstant,
	}
}

// ValidateProcessConfig sanitizes the folder paths in place and checks the method tokens and thresholds.
// An empty reference channel method is allowed and forwarded unchanged.
func ValidateProcessConfig(cfg *types.ProcessConfig) error {
	cfg.InputFolder = SanitizeFolderPath(cfg.InputFolder)
	cfg.OutputFolder = SanitizeFolderPath(cfg.OutputFolder)

	err := ValidateFolderPath(cfg.InputFolder, "input_folder")
	if err != nil {
		return err
	}

	if cfg.OutputFolder != "" {
		err = ValidateFolderPath(cfg.OutputFolder, "output_folder")
		if err != nil {
			return err
		}
	}

	outlier, err := method.Outlier(cfg.OutlierMethod)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}

	if cfg.ReferenceChannelMethod != "" {
		_, err = method.ReferenceChannel(cfg.ReferenceChannelMethod)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
		}
	}

	values := thresholds(cfg)

	for _, name := range []string{
		"boxplot_threshold_discharge",
		"boxplot_threshold_efficiency",
		"zscore_threshold_discharge",
		"zscore_threshold_efficiency",
		"zscore_mad_constant",
	} {
		err = ValidateFloatInput(values[name], 0, MaxThreshold, name)
		if err != nil {
			return err
		}
	}

	// thresholds the selected method reads must be positive
	for _, name := range outlier.Thresholds {
		if values[name] <= 0 {
			return fmt.Errorf("%w: %s must be positive for %s", ErrInvalidParameters, name, outlier.Name)
		}
	}

	return nil
}
