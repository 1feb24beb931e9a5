package ai

import (
	"encoding/json"
	"math/rand"
	"strings"
)

// Deterministic keyword indicators used when no classifier is reachable.
var (
	toxicWords = []string{"hate", "stupid", "idiot", "kill", "die"}
	spamWords  = []string{"buy now", "click here", "free money", "urgent"}
)

var textCategories = []string{
	"toxicity", "hate_speech", "harassment", "spam", "violence", "sexual_content",
}

var heuristicRaw = json.RawMessage(`{"fallback":true,"provider":"heuristic"}`)

// HeuristicText scores text by keyword membership: each toxic hit adds
// 0.3 (capped at 0.9), each spam hit adds 0.4 (capped at 0.8). Overall
// risk is the max category score.
func HeuristicText(text string) *Assessment {
	lower := strings.ToLower(text)

	scores := make(map[string]float64, len(textCategories))
	for _, c := range textCategories {
		scores[c] = 0
	}
	labels := []string{}

	toxicCount := 0
	for _, w := range toxicWords {
		if strings.Contains(lower, w) {
			toxicCount++
		}
	}
	if toxicCount > 0 {
		labels = append(labels, "toxicity")
		scores["toxicity"] = min(float64(toxicCount)*0.3, 0.9)
	}

	spamCount := 0
	for _, w := range spamWords {
		if strings.Contains(lower, w) {
			spamCount++
		}
	}
	if spamCount > 0 {
		labels = append(labels, "spam")
		scores["spam"] = min(float64(spamCount)*0.4, 0.8)
	}

	return &Assessment{
		Labels:      labels,
		Scores:      scores,
		OverallRisk: maxScore(scores),
		Raw:         heuristicRaw,
	}
}

// HeuristicImage returns low-magnitude placeholder scores. It is a stand-in
// signal, not a real image classifier.
func HeuristicImage() *Assessment {
	possibleLabels := []string{"safe_content", "text_overlay", "people"}

	scores := map[string]float64{
		"nudity":        rand.Float64() * 0.2,
		"violence":      rand.Float64() * 0.1,
		"inappropriate": rand.Float64() * 0.15,
	}

	return &Assessment{
		Labels:      []string{possibleLabels[rand.Intn(len(possibleLabels))]},
		Scores:      scores,
		OverallRisk: maxScore(scores),
		Raw:         heuristicRaw,
	}
}

func maxScore(scores map[string]float64) float64 {
	var m float64
	for _, v := range scores {
		if v > m {
			m = v
		}
	}
	return m
}
