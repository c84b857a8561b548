package method

import (
	"fmt"
	"sort"
)

// Method describes one analysis method token understood by the external program
type Method struct {
	Name       string   `json:"name"`
	LabelKey   string   `json:"label_key"`
	Thresholds []string `json:"thresholds,omitempty"` // config fields the method reads
}

// Catalog lists the known methods per option
type Catalog struct {
	Outlier          []Method `json:"outlier"`
	ReferenceChannel []Method `json:"reference_channel"`
}

var outlierMethods = map[string]Method{
	"boxplot": {
		Name:       "boxplot",
		LabelKey:   "method_boxplot",
		Thresholds: []string{"boxplot_threshold_discharge", "boxplot_threshold_efficiency"},
	},
	"zscore_mad": {
		Name:       "zscore_mad",
		LabelKey:   "method_zscore_mad",
		Thresholds: []string{"zscore_threshold_discharge", "zscore_threshold_efficiency", "zscore_mad_constant"},
	},
}

var referenceMethods = map[string]Method{
	"traditional":         {Name: "traditional", LabelKey: "method_traditional"},
	"pca":                 {Name: "pca", LabelKey: "method_pca"},
	"retention_curve_mse": {Name: "retention_curve_mse", LabelKey: "method_retention_curve_mse"},
}

// Outlier looks up an outlier detection method by token
func Outlier(name string) (Method, error) {
	m, ok := outlierMethods[name]
	if !ok {
		return Method{}, fmt.Errorf("unknown outlier method: %q (allowed: %v)", name, names(outlierMethods))
	}

	return m, nil
}

// ReferenceChannel looks up a reference channel selection method by token
func ReferenceChannel(name string) (Method, error) {
	m, ok := referenceMethods[name]
	if !ok {
		return Method{}, fmt.Errorf("unknown reference channel method: %q (allowed: %v)", name, names(referenceMethods))
	}

	return m, nil
}

// All returns the catalog sorted by token
func All() Catalog {
	return Catalog{
		Outlier:          sorted(outlierMethods),
		ReferenceChannel: sorted(referenceMethods),
	}
}

func names(m map[string]Method) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

func sorted(m map[string]Method) []Method {
	out := make([]Method, 0, len(m))
	for _, name := range names(m) {
		out = append(out, m[name])
	}

	return out
}
