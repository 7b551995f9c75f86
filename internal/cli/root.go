// Package cli implements the memctl commands that talk to the memoryd
// HTTP API.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var addrFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Control the tiered memory daemon",
	Long:  "A small CLI for the memoryd HTTP API: record memories, inspect tiers, run sleep cycles, sync the vault.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&addrFlag, "addr", "a", "", "Daemon base URL (default: $MEMORYD_ADDR or http://localhost:8080)")
}

func baseURL() string {
	if addrFlag != "" {
		return strings.TrimRight(addrFlag, "/")
	}
	if env := os.Getenv("MEMORYD_ADDR"); env != "" {
		return strings.TrimRight(env, "/")
	}
	return "http://localhost:8080"
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// call performs one API request and returns the raw response body along
// with the status code. A connection failure exits the process.
func call(method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			exitErr("encode request", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, baseURL()+path, reader)
	if err != nil {
		exitErr("build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		exitErr("call daemon", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		exitErr("read response", err)
	}
	return resp.StatusCode, raw
}

// printBody pretty-prints a JSON response body.
func printBody(raw []byte) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		fmt.Println(string(raw))
		return
	}
	pretty, _ := json.MarshalIndent(decoded, "", "  ")
	fmt.Println(string(pretty))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// exitStatus reports a non-2xx API response and exits.
func exitStatus(status int, raw []byte) {
	fmt.Fprintf(os.Stderr, "error: daemon returned %d: %s\n", status, strings.TrimSpace(string(raw)))
	os.Exit(1)
}
