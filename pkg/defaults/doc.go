// Package defaults centralizes timeout values used across sysgrab
// components, so bounded operations share one tuning point.
package defaults
