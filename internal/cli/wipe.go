package cli

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Wipe memory entries via log compaction",
		Long:  "Wipe all entries, or only the tiers given with --tiers. Asks for confirmation unless --yes is set.",
		Run:   runWipe,
	}

	cmd.Flags().String("tiers", "", "Comma-separated tiers to wipe (default: all)")
	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	RootCmd.AddCommand(cmd)
}

func runWipe(cmd *cobra.Command, args []string) {
	tiers, _ := cmd.Flags().GetString("tiers")
	yes, _ := cmd.Flags().GetBool("yes")

	scope := "ALL memories"
	if tiers != "" {
		scope = "tiers: " + tiers
	}

	if !yes {
		fmt.Printf("This will permanently remove %s. Continue? [y/N] ", scope)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("aborted")
			return
		}
	}

	path := "/v1/memories"
	if tiers != "" {
		path += "?tiers=" + url.QueryEscape(tiers)
	}

	status, raw := call(http.MethodDelete, path, nil)
	if status != http.StatusOK {
		exitStatus(status, raw)
	}
	printBody(raw)
}
