package cli

import (
	"fmt"

	"github.com/danielmriley/aigent-sub002/internal/buildconfig"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print memctl version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("memctl %s (%s)\n", buildconfig.Version(), buildconfig.Commit())
		},
	}

	RootCmd.AddCommand(cmd)
}
