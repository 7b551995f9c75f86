package service

import (
	"strings"

	"github.com/danielmriley/aigent-sub002/internal/domain"
)

// Keyword lists for heuristic valence inference. Deliberately rough: the
// goal is a non-zero starting point for emotional salience, not a sentiment
// model.
var positiveWords = map[string]bool{
	"great": true, "love": true, "excited": true, "happy": true,
	"amazing": true, "solved": true, "success": true, "excellent": true,
	"wonderful": true, "fantastic": true, "glad": true, "pleased": true,
	"proud": true, "brilliant": true, "perfect": true, "works": true,
	"fixed": true, "done": true, "achieved": true, "helpful": true,
	"thanks": true, "awesome": true, "enjoy": true, "like": true,
	"good": true, "nice": true, "yes": true,
}

var negativeWords = map[string]bool{
	"frustrated": true, "confused": true, "error": true, "failed": true,
	"worried": true, "stuck": true, "broken": true, "terrible": true,
	"awful": true, "wrong": true, "bad": true, "hate": true,
	"annoying": true, "difficult": true, "struggle": true, "issue": true,
	"bug": true, "crash": true, "problem": true, "cannot": true,
	"unable": true, "fail": true, "loss": true, "lost": true,
	"miss": true, "missing": true,
}

func isNegation(word string) bool {
	switch word {
	case "not", "no", "never", "without":
		return true
	}
	return false
}

// InferValence estimates an emotional valence for content, clamped to
// [-1, 1]. A two-word lookback window detects negation so "not a problem"
// scores positively rather than negatively. Exclamation marks and all-caps
// words add small emphasis bonuses.
func InferValence(content string) float32 {
	lower := strings.ToLower(content)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	var score float32
	for i, word := range words {
		negated := (i > 0 && isNegation(words[i-1])) ||
			(i > 1 && isNegation(words[i-2]))

		switch {
		case positiveWords[word]:
			if negated {
				score -= 0.10
			} else {
				score += 0.15
			}
		case negativeWords[word]:
			if negated {
				score += 0.10
			} else {
				score -= 0.15
			}
		}
	}

	// Exclamation marks add +0.05 each, capped at +0.20.
	exclaims := float32(strings.Count(content, "!")) * 0.05
	if exclaims > 0.20 {
		exclaims = 0.20
	}
	score += exclaims

	// All-caps words of length >= 4 signal emphasis: +0.10 each, capped at +0.20.
	var capsBonus float32
	for _, word := range strings.Fields(content) {
		var alpha []rune
		for _, r := range word {
			if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
				alpha = append(alpha, r)
			}
		}
		if len(alpha) >= 4 && string(alpha) == strings.ToUpper(string(alpha)) {
			capsBonus += 0.10
		}
	}
	if capsBonus > 0.20 {
		capsBonus = 0.20
	}
	score += capsBonus

	return domain.ClampValence(score)
}
