package service

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"learnquest_backend/internal/model"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?\n]+`)
	wordRe          = regexp.MustCompile(`[A-Za-z]{4,}`)
	conceptRe       = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	technicalRe     = regexp.MustCompile(`\b[A-Za-z]+(?:[A-Z][a-z]*|[0-9]+)\b`)
)

const (
	minSentenceLength = 20
	maxConcepts       = 50
	distractorCount   = 3
	promptSnippetLen  = 150
)

// GeneratedQuestion is one multiple-choice question derived from raw text.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
	Source        string   `json:"source"`
}

// QuestionGenerator turns extracted document text into cloze-style MCQs. The
// heuristic picks a concept per sentence as the answer and samples distractors
// from the document vocabulary. The rng is injected so generation can be made
// deterministic in tests.
type QuestionGenerator struct {
	rng *rand.Rand
}

func NewQuestionGenerator(rng *rand.Rand) *QuestionGenerator {
	return &QuestionGenerator{rng: rng}
}

func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minSentenceLength {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func keywords(sentence string) []string {
	seen := make(map[string]struct{})
	var uniq []string
	for _, w := range wordRe.FindAllString(sentence, -1) {
		lw := strings.ToLower(w)
		if _, ok := seen[lw]; ok {
			continue
		}
		seen[lw] = struct{}{}
		uniq = append(uniq, lw)
		if len(uniq) == 5 {
			break
		}
	}
	return uniq
}

// extractConcepts collects capitalized and technical-looking terms in document
// order, deduplicated case-insensitively.
func extractConcepts(text string) []string {
	candidates := append(conceptRe.FindAllString(text, -1), technicalRe.FindAllString(text, -1)...)

	seen := make(map[string]struct{})
	var unique []string
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if _, ok := seen[lc]; ok || len(c) < 4 {
			continue
		}
		seen[lc] = struct{}{}
		unique = append(unique, c)
		if len(unique) == maxConcepts {
			break
		}
	}
	return unique
}

func vocabulary(text string) []string {
	seen := make(map[string]struct{})
	var words []string
	for _, w := range wordRe.FindAllString(text, -1) {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

// questionFromSentence builds one MCQ, or nil when the sentence yields no
// usable answer or not enough distractors.
func (g *QuestionGenerator) questionFromSentence(sentence string, concepts, vocab []string) *GeneratedQuestion {
	sentenceLower := strings.ToLower(sentence)

	var answer string
	for _, c := range concepts {
		if strings.Contains(sentenceLower, strings.ToLower(c)) {
			answer = c
			break
		}
	}
	if answer == "" {
		keys := keywords(sentence)
		if len(keys) == 0 {
			return nil
		}
		answer = keys[g.rng.Intn(len(keys))]
	}

	distractors := make([]string, 0, len(vocab))
	for _, w := range vocab {
		if !strings.EqualFold(w, answer) {
			distractors = append(distractors, w)
		}
	}
	if len(distractors) == 0 {
		return nil
	}
	g.rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > distractorCount {
		distractors = distractors[:distractorCount]
	}

	options := append([]string{answer}, distractors...)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, o := range options {
		if o == answer {
			correct = i
			break
		}
	}

	snippet := sentence
	ellipsis := ""
	if len(snippet) > promptSnippetLen {
		snippet = snippet[:promptSnippetLen]
		ellipsis = "..."
	}

	return &GeneratedQuestion{
		Question:      fmt.Sprintf("According to the text: '%s%s', which term is most relevant?", snippet, ellipsis),
		Options:       options,
		CorrectAnswer: correct,
		Difficulty:    "medium",
		Source:        model.QuestionSourcePDF,
	}
}

// Generate produces up to maxQuestions MCQs from the text. Sentences are tried
// in order; generation stops after three times the requested count of
// attempts so degenerate documents terminate quickly.
func (g *QuestionGenerator) Generate(text string, maxQuestions int) []GeneratedQuestion {
	sentences := splitSentences(text)
	concepts := extractConcepts(text)
	vocab := vocabulary(text)

	var questions []GeneratedQuestion
	attempted := 0
	for _, s := range sentences {
		if len(questions) >= maxQuestions {
			break
		}
		attempted++
		if attempted > maxQuestions*3 {
			break
		}
		if q := g.questionFromSentence(s, concepts, vocab); q != nil {
			questions = append(questions, *q)
		}
	}
	return questions
}
