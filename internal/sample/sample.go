package sample

import "strings"

// MaxCount is the largest sample set that can be requested.
const MaxCount = 50

// Request asks for a sample question set without a source document.
type Request struct {
	QuestionType string `json:"questionType"`
	Count        int    `json:"count"`
	Difficulty   string `json:"difficulty"`
	// Topic, when it names a built-in topic, is placed first.
	Topic string `json:"topic,omitempty"`
}

type topic struct {
	Name  string
	Facts []string
}

// Topics lists the built-in topic names in bank order.
func Topics() []string {
	out := make([]string, len(bank))
	for i, t := range bank {
		out[i] = t.Name
	}
	return out
}

// HasTopic reports whether name is a built-in topic, ignoring case.
func HasTopic(name string) bool {
	_, ok := find(name)
	return ok
}

// Text assembles the bank into a document, one paragraph per topic. The
// topic named by first, if any, comes first; the rest keep bank order.
func Text(first string) string {
	order := make([]topic, 0, len(bank))
	if i, ok := find(first); ok {
		order = append(order, bank[i])
	}
	for _, t := range bank {
		if !strings.EqualFold(t.Name, strings.TrimSpace(first)) {
			order = append(order, t)
		}
	}

	paragraphs := make([]string, len(order))
	for i, t := range order {
		paragraphs[i] = strings.Join(t.Facts, " ")
	}
	return strings.Join(paragraphs, "\n\n")
}

// ClampCount bounds a requested sample size to 1..MaxCount. Zero means the
// default of 10.
func ClampCount(n int) int {
	switch {
	case n == 0:
		return 10
	case n < 1:
		return 1
	case n > MaxCount:
		return MaxCount
	}
	return n
}

func find(name string) (int, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false
	}
	for i, t := range bank {
		if strings.EqualFold(t.Name, name) {
			return i, true
		}
	}
	return 0, false
}
