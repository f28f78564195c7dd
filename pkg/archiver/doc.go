// Package archiver packages a collected workspace plus resolved log files
// into a single gzip-compressed tar archive.
//
// The archive destination is validated against the source directory: writing
// the archive inside the directory being archived (and then cleaned up)
// silently destroys data, so that arrangement is rejected rather than
// reproduced. The package also generates the SHA-256 checksum manifest
// included in each bundle.
package archiver
