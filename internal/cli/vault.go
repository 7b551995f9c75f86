package cli

import (
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "vault-sync",
		Short: "Force a full vault projection rebuild",
		Run:   runVaultSync,
	}

	RootCmd.AddCommand(cmd)
}

func runVaultSync(cmd *cobra.Command, args []string) {
	status, raw := call(http.MethodPost, "/v1/vault/sync", nil)
	if status != http.StatusOK {
		exitStatus(status, raw)
	}
	printBody(raw)
}
