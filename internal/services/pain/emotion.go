package pain

import (
	"github.com/ternarybob/painscope/internal/lexicon"
	"github.com/ternarybob/painscope/internal/models"
)

// ClassifyEmotion returns the emotion with the most keyword hits, neutral when none match
func ClassifyEmotion(text string) models.Emotion {
	return classifyEmotion(lexicon.Prepare(text))
}

func classifyEmotion(text lexicon.Text) models.Emotion {
	best := models.EmotionNeutral
	bestHits := 0
	// AllEmotions fixes the tie-break order
	for _, emotion := range models.AllEmotions {
		hits := len(text.Match(lexicon.Emotions[emotion]))
		if hits > bestHits {
			best, bestHits = emotion, hits
		}
	}
	return best
}
