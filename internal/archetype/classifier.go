// Package archetype maps workflow context to a coarse category using
// weighted keyword and platform signals. Classification is pure, performs
// no I/O, and doubles as the hard fallback when the reasoning stage is
// unavailable.
package archetype

import (
	"strings"

	"github.com/pulseboard/dashgen/internal/model"
)

const (
	platformBonus  = 2
	baseConfidence = 0.4
	scoreWeight    = 0.1
	maxConfidence  = 0.95

	// noMatchConfidence applies when no archetype clears its threshold.
	noMatchConfidence = 0.3
)

// Classification is the result of classifying a workflow.
type Classification struct {
	Archetype      model.Archetype
	Confidence     float64
	Score          int
	Blends         [3]model.EmphasisBlend
	TitleTemplates [3]string
}

// Classify scores the workflow name, platform, and entity names against the
// archetype table and returns the best match with its preset emphasis
// blends and title templates. Ties between equal scores resolve in table
// declaration order.
func Classify(workflowName, platformType string, entities []string) Classification {
	searchText := strings.ToLower(workflowName + " " + strings.Join(entities, " "))
	platform := strings.ToLower(strings.TrimSpace(platformType))

	best := -1
	bestScore := 0
	for i, def := range definitions {
		score := 0
		for _, kw := range def.Keywords {
			if strings.Contains(searchText, kw) {
				score++
			}
		}
		for _, p := range def.Platforms {
			if platform == p {
				score += platformBonus
				break
			}
		}
		if score < def.Threshold {
			continue
		}
		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return Classification{
			Archetype:      generalDef.Archetype,
			Confidence:     noMatchConfidence,
			Blends:         generalDef.Blends,
			TitleTemplates: generalDef.Titles,
		}
	}

	def := definitions[best]
	confidence := baseConfidence + scoreWeight*float64(bestScore)
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return Classification{
		Archetype:      def.Archetype,
		Confidence:     confidence,
		Score:          bestScore,
		Blends:         def.Blends,
		TitleTemplates: def.Titles,
	}
}
