// Package config defines the collection configuration for sysgrab: the
// ordered diagnostic step list, the log path patterns to gather, the archive
// destination directory, and the interactivity mode.
//
// Configuration is loaded from an optional YAML file overlaid on built-in
// defaults. The defaults match the standard Linux support-bundle set
// (top, free, iostat, sar, vmstat, pidstat, systemctl, df) and common system
// log locations.
package config
