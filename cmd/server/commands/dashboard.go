package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/qclab/internal/domain/models"
	"github.com/mamadbah2/qclab/internal/service/reporting"
	"github.com/mamadbah2/qclab/pkg/logger"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the dashboard of the startup record collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := reporting.NewService(newStore(cfg), trendOptions(cfg), logger.Named(baseLogger, "svc.reporting"))
		dash, err := svc.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		return printDashboard(cmd.OutOrStdout(), dash)
	},
}

func printDashboard(out io.Writer, dash models.Dashboard) error {
	fmt.Fprintf(out, "Total: %d  Approved: %d  Rejected: %d  Conditional/Pending: %d\n\n",
		dash.Stats.Total, dash.Stats.Approved, dash.Stats.Rejected, dash.Stats.ConditionalOrPending)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	writeSeries(w, "Density trend", dash.Density)
	writeSeries(w, "Purity trend", dash.Purity)
	return w.Flush()
}

func writeSeries(w io.Writer, title string, points []models.TrendPoint) {
	fmt.Fprintf(w, "%s\n", title)
	if len(points) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}
	fmt.Fprintln(w, "  BATCH\tVALUE\tPARAMETER\tPRODUCT")
	for _, p := range points {
		fmt.Fprintf(w, "  %s\t%g\t%s\t%s\n", p.Label, p.Value, p.Parameter, p.Product)
	}
	fmt.Fprintln(w)
}
