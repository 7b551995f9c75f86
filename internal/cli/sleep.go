package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Run one sleep consolidation cycle",
		Run:   runSleep,
	}

	RootCmd.AddCommand(cmd)
}

func runSleep(cmd *cobra.Command, args []string) {
	status, raw := call(http.MethodPost, "/v1/sleep", nil)
	if status != http.StatusOK {
		exitStatus(status, raw)
	}
	printBody(raw)
}
