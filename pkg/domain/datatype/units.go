package datatype

import "fmt"

// Normalize converts a provider-native quantity into its canonical value and
// unit string for the given canonical id.
//
// Providers store body fat as a fraction (0.21 for 21%); it is scaled to a
// percentage here. Every other supported type passes through unchanged with
// the catalog unit.
func Normalize(canonicalID string, value float64) (float64, string, error) {
	d, ok := Resolve(canonicalID)
	if !ok {
		return 0, "", fmt.Errorf("no unit mapping for data type %q", canonicalID)
	}
	if canonicalID == TypeBodyFat {
		return value * 100.0, "percent", nil
	}
	return value, d.Unit, nil
}
