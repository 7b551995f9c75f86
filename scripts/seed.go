// Seed script for creating demo data in the memory daemon.
// Run with: go run ./scripts/seed.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

type seedEntry struct {
	Tier       string  `json:"tier"`
	Content    string  `json:"content"`
	Source     string  `json:"source"`
	Confidence float32 `json:"confidence"`
}

func main() {
	// Load environment
	envFile := os.Getenv("AIGENT_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	baseURL := os.Getenv("MEMORYD_ADDR")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	entries := []seedEntry{
		{"episodic", "user asked about the difference between goroutines and threads", "user-chat", 0.7},
		{"episodic", "walked through the event loop of the deploy pipeline together", "assistant-reply", 0.7},
		{"episodic", "the user mentioned their standup is at 9:30 pacific", "user-chat", 0.8},
		{"semantic", "user works on a platform team at a biotech company", "sleep:distill", 0.85},
		{"semantic", "the staging cluster runs on spot instances and restarts nightly", "user-chat", 0.75},
		{"procedural", "to cut a release: tag main, wait for ci, then promote the artifact", "assistant-reply", 0.8},
		{"reflective", "answers with a concrete example land better than abstract ones", "reflect:self", 0.7},
		{"user_profile", "editor: vim", "user-profile:preference", 0.8},
		{"user_profile", "goal: ship the mobile app this quarter", "user-profile:goal", 0.85},
		{"user_profile", "timezone: pacific", "user-profile:fact", 0.9},
	}

	for _, entry := range entries {
		body, err := json.Marshal(entry)
		if err != nil {
			log.Fatalf("encode entry: %v", err)
		}

		resp, err := http.Post(baseURL+"/v1/memories", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("failed to reach daemon at %s: %v", baseURL, err)
		}
		raw := new(bytes.Buffer)
		_, _ = raw.ReadFrom(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Fatalf("seed entry rejected (%d): %s", resp.StatusCode, raw.String())
		}
		fmt.Printf("seeded [%s] %s\n", entry.Tier, entry.Content)
	}

	fmt.Printf("\nSeeded %d entries. Try:\n", len(entries))
	fmt.Println("  memctl stats")
	fmt.Println("  memctl sleep")
	fmt.Println("  memctl recent --limit 5")
}
