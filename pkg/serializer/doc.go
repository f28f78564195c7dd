// Package serializer formats collection run results for the terminal:
// a one-line text summary by default, or JSON/YAML for programmatic
// consumption.
package serializer
