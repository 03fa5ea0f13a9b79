package trivia

import "strings"

// Search returns the questions whose text contains term, ignoring case,
// in corpus order. An empty term is rejected rather than matching everything.
func Search(term string, corpus []Question) ([]Question, error) {
	if err := validateSearchTerm(&term); err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matches := make([]Question, 0)
	for _, q := range corpus {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			matches = append(matches, q)
		}
	}
	return matches, nil
}
