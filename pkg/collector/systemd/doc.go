// Package systemd queries the service manager over D-Bus for running
// service-type units.
package systemd
