package calibrate

import "strings"

// Difficulty is a requested difficulty tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Exam   Difficulty = "exam"
)

// Vocabulary expresses which words a tier prefers in source sentences.
type Vocabulary string

const (
	VocabularyCommon   Vocabulary = "common"
	VocabularyBalanced Vocabulary = "balanced"
	VocabularyAdvanced Vocabulary = "advanced"
)

// Profile parametrizes fact selection and question synthesis for one tier.
type Profile struct {
	Tier Difficulty `json:"tier"`

	// Preferred sentence length band in tokens. Sentences outside the band
	// are still eligible but rank lower.
	MinSentenceLength int `json:"minSentenceLength"`
	MaxSentenceLength int `json:"maxSentenceLength"`

	// DistractorSimilarityTarget is the lexical similarity (0..1) that
	// distractors should have to the correct answer.
	DistractorSimilarityTarget float64 `json:"distractorSimilarityTarget"`

	VocabularyPreference Vocabulary `json:"vocabularyPreference"`

	// ShortAnswerShare is the fraction of short-answer questions in a mixed set.
	ShortAnswerShare float64 `json:"shortAnswerShare"`
}

var profiles = map[Difficulty]Profile{
	Easy: {
		Tier:                       Easy,
		MinSentenceLength:          5,
		MaxSentenceLength:          18,
		DistractorSimilarityTarget: 0.15,
		VocabularyPreference:       VocabularyCommon,
		ShortAnswerShare:           0.10,
	},
	Medium: {
		Tier:                       Medium,
		MinSentenceLength:          6,
		MaxSentenceLength:          25,
		DistractorSimilarityTarget: 0.35,
		VocabularyPreference:       VocabularyBalanced,
		ShortAnswerShare:           0.20,
	},
	Hard: {
		Tier:                       Hard,
		MinSentenceLength:          10,
		MaxSentenceLength:          35,
		DistractorSimilarityTarget: 0.55,
		VocabularyPreference:       VocabularyAdvanced,
		ShortAnswerShare:           0.35,
	},
	Exam: {
		Tier:                       Exam,
		MinSentenceLength:          12,
		MaxSentenceLength:          45,
		DistractorSimilarityTarget: 0.70,
		VocabularyPreference:       VocabularyAdvanced,
		ShortAnswerShare:           0.50,
	},
}

// For returns the profile for a tier. Unknown tiers get the medium profile.
func For(d Difficulty) Profile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[Medium]
}

// ParseDifficulty maps user input to a tier. It accepts any case, surrounding
// space, and the "Exam Level" label. ok is false when the input was not
// recognized and Medium was substituted.
func ParseDifficulty(s string) (d Difficulty, ok bool) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	case "exam", "exam level", "exam_level", "exam-level":
		return Exam, true
	}
	return Medium, false
}

// Tiers lists every tier from easiest to hardest.
func Tiers() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Exam}
}
