package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-tier memory counts",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	status, raw := call(http.MethodGet, "/v1/stats", nil)
	if status != http.StatusOK {
		exitStatus(status, raw)
	}
	printBody(raw)
}
