package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent memory entries, newest first",
		Run:   runRecent,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum entries to return")

	RootCmd.AddCommand(cmd)
}

func runRecent(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	status, raw := call(http.MethodGet, fmt.Sprintf("/v1/memories/recent?limit=%d", limit), nil)
	if status != http.StatusOK {
		exitStatus(status, raw)
	}
	printBody(raw)
}
