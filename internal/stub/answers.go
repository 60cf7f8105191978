package stub

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type AnswerRule struct {
	Keywords []string `yaml:"keywords"`
	Answer   string   `yaml:"answer"`
}

// AnswerBook maps support queries to canned replies.
type AnswerBook struct {
	Fallback string       `yaml:"fallback"`
	Answers  []AnswerRule `yaml:"answers"`
}

func ParseAnswerBook(data []byte) (AnswerBook, error) {
	var book AnswerBook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return AnswerBook{}, fmt.Errorf("parse answer book: %w", err)
	}
	if strings.TrimSpace(book.Fallback) == "" {
		return AnswerBook{}, fmt.Errorf("parse answer book: fallback answer required")
	}
	for i, rule := range book.Answers {
		if len(rule.Keywords) == 0 || strings.TrimSpace(rule.Answer) == "" {
			return AnswerBook{}, fmt.Errorf("parse answer book: rule %d needs keywords and an answer", i)
		}
	}
	return book, nil
}

// Lookup returns the first rule whose keywords all occur in query.
func (b AnswerBook) Lookup(query string) string {
	q := strings.ToLower(query)
	for _, rule := range b.Answers {
		if matchesAll(q, rule.Keywords) {
			return rule.Answer
		}
	}
	return b.Fallback
}

func matchesAll(q string, keywords []string) bool {
	for _, k := range keywords {
		if !strings.Contains(q, strings.ToLower(strings.TrimSpace(k))) {
			return false
		}
	}
	return true
}
