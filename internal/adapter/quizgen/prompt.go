package quizgen

import (
	"fmt"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"
)

const promptHeader = `Task: Create a Multiple Choice Quiz for the English word: "%s". Type: %s.
`

const sentencePrompt = `Create a sentence where "%[1]s" fits perfectly, replacing it with "______".
JSON Output: {
    "question": "The sentence...",
    "correct": "%[1]s",
    "distractors": ["word1", "word2", "word3"]
}
(Distractors must be same part of speech, plausible but wrong).
`

const definitionPrompt = `Provide an English definition for "%[1]s".
JSON Output: {
    "question": "Definition: ...",
    "correct": "%[1]s",
    "distractors": ["word1", "word2", "word3"]
}
`

const thesaurusPrompt = `Provide synonyms for "%[1]s".
JSON Output: {
    "question": "Which word means: [synonyms]?",
    "correct": "%[1]s",
    "distractors": ["word1", "word2", "word3"]
}
`

const promptFooter = `IMPORTANT: Output RAW JSON only. Do not wrap in markdown blocks.
Ensure "distractors" is an array of 3 strings.`

// BuildPrompt renders the instruction text for one word in the requested style.
// Unknown styles fall back to the definition template.
func BuildPrompt(p domain.QuizPrompt) string {
	var body string
	switch p.Style {
	case domain.StyleSentence:
		body = sentencePrompt
	case domain.StyleThesaurus:
		body = thesaurusPrompt
	default:
		body = definitionPrompt
	}
	return fmt.Sprintf(promptHeader, p.Word, p.Style) + fmt.Sprintf(body, p.Word) + promptFooter
}
