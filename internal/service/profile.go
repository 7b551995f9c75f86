package service

import (
	"sort"
	"strings"

	"github.com/danielmriley/aigent-sub002/internal/domain"
)

// Source tags commonly carried by UserProfile entries.
const (
	SourceProfilePreference = "user-profile:preference"
	SourceProfileGoal       = "user-profile:goal"
	SourceProfileFact       = "user-profile:fact"
	SourceProfileStyle      = "user-profile:style"
)

// UserProfileEntries returns all UserProfile entries, newest first.
func UserProfileEntries(entries []domain.MemoryEntry) []domain.MemoryEntry {
	var profile []domain.MemoryEntry
	for _, entry := range entries {
		if entry.Tier == domain.TierUserProfile {
			profile = append(profile, entry)
		}
	}
	sort.SliceStable(profile, func(i, j int) bool {
		return profile[i].CreatedAt.After(profile[j].CreatedAt)
	})
	return profile
}

// FormatUserProfileBlock renders a compact profile block for prompt use.
// Entries are deduplicated by key (the content segment before the first
// colon), keeping only the most recent entry per key so stale profile facts
// never appear alongside their replacements. Returns "" when no profile
// entries exist.
func FormatUserProfileBlock(entries []domain.MemoryEntry) string {
	profile := UserProfileEntries(entries)
	if len(profile) == 0 {
		return ""
	}

	byKey := make(map[string]domain.MemoryEntry)
	for _, entry := range profile {
		key := strings.ToLower(strings.TrimSpace(strings.SplitN(entry.Content, ":", 2)[0]))
		existing, ok := byKey[key]
		if !ok || entry.CreatedAt.After(existing.CreatedAt) {
			byKey[key] = entry
		}
	}

	var preferences, goals, facts, style, other []string
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		entry := byKey[k]
		switch {
		case strings.Contains(entry.Source, "preference"):
			preferences = append(preferences, entry.Content)
		case strings.Contains(entry.Source, "goal"):
			goals = append(goals, entry.Content)
		case strings.Contains(entry.Source, "fact"):
			facts = append(facts, entry.Content)
		case strings.Contains(entry.Source, "style"):
			style = append(style, entry.Content)
		default:
			other = append(other, entry.Content)
		}
	}

	var sections []string
	appendSection := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		var b strings.Builder
		b.WriteString(title)
		b.WriteString(":\n")
		for _, item := range items {
			b.WriteString("  - ")
			b.WriteString(item)
			b.WriteString("\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}

	appendSection("Preferences", preferences)
	appendSection("Goals", goals)
	appendSection("Known facts", facts)
	appendSection("Communication style", style)
	appendSection("Other", other)

	return strings.Join(sections, "\n")
}
