/*
Copyright © 2025 Sysgrab Authors
SPDX-License-Identifier: Apache-2.0
*/
package defaults

import "time"

// Timeouts for bounded collection operations. Diagnostic step commands are
// deliberately unbounded: sampling tools block for their configured
// duration and the runner waits synchronously.
const (
	// ServiceQueryTimeout bounds the service manager D-Bus query used by
	// the report's running-services section. The section falls back to its
	// command line on timeout.
	ServiceQueryTimeout = 10 * time.Second
)
