package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "record [content]",
		Short: "Record a memory entry",
		Long:  "Record a memory entry. Content can be a positional arg or piped via stdin.",
		Run:   runRecord,
	}

	cmd.Flags().StringP("tier", "t", "episodic", "Tier: episodic, semantic, procedural, reflective, user_profile, core")
	cmd.Flags().StringP("source", "s", "user-input", "Source tag, e.g. user-chat, reflect:self, onboarding")
	cmd.Flags().Float32P("confidence", "c", 0, "Confidence in [0,1] (default: daemon default)")
	cmd.Flags().Float32("valence", 0, "Valence in [-1,1] (default: inferred)")
	cmd.Flags().String("tags", "", "Comma-separated tags")

	RootCmd.AddCommand(cmd)
}

func runRecord(cmd *cobra.Command, args []string) {
	tier, _ := cmd.Flags().GetString("tier")
	source, _ := cmd.Flags().GetString("source")
	tagsStr, _ := cmd.Flags().GetString("tags")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("record", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	body := map[string]any{
		"tier":    tier,
		"content": content,
		"source":  source,
	}
	if cmd.Flags().Changed("confidence") {
		confidence, _ := cmd.Flags().GetFloat32("confidence")
		body["confidence"] = confidence
	}
	if cmd.Flags().Changed("valence") {
		valence, _ := cmd.Flags().GetFloat32("valence")
		body["valence"] = valence
	}
	if tagsStr != "" {
		var tags []string
		for _, t := range strings.Split(tagsStr, ",") {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		body["tags"] = tags
	}

	status, raw := call(http.MethodPost, "/v1/memories", body)
	switch status {
	case http.StatusCreated:
		printBody(raw)
	case http.StatusUnprocessableEntity:
		fmt.Fprintln(os.Stderr, "quarantined:")
		printBody(raw)
		os.Exit(1)
	default:
		exitStatus(status, raw)
	}
}
