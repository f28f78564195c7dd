package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/mchmarny/sysgrab/pkg/defaults"
)

// UnitStatus describes one running service unit.
type UnitStatus struct {
	Name        string
	Description string
	ActiveState string
	SubState    string
}

// Collector queries the service manager over D-Bus for running service-type
// units. It is used by the report builder as a richer alternative to parsing
// `systemctl` text output; when the bus is unavailable the caller falls back
// to the configured command line.
type Collector struct {
}

// ListRunning returns all service-type units currently in the running state,
// sorted by unit name.
func (c *Collector) ListRunning(ctx context.Context) ([]UnitStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ServiceQueryTimeout)
	defer cancel()

	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer conn.Close()

	units, err := conn.ListUnitsFilteredContext(ctx, []string{"running"})
	if err != nil {
		return nil, fmt.Errorf("failed to list running units: %w", err)
	}

	res := make([]UnitStatus, 0, len(units))
	for _, u := range units {
		if !strings.HasSuffix(u.Name, ".service") {
			continue
		}
		res = append(res, UnitStatus{
			Name:        u.Name,
			Description: u.Description,
			ActiveState: u.ActiveState,
			SubState:    u.SubState,
		})
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })

	slog.Debug("listed running services", "count", len(res))
	return res, nil
}

// Render formats unit statuses as a fixed-width text table suitable for
// verbatim inclusion in the system report.
func Render(units []UnitStatus) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tACTIVE\tSUB\tDESCRIPTION")
	for _, u := range units {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Name, u.ActiveState, u.SubState, u.Description)
	}
	// tabwriter flush on a strings.Builder cannot fail
	_ = tw.Flush()
	return b.String()
}
