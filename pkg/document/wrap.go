package document

import "strings"

// Wrap splits text into lines no wider than maxWidth, greedily appending
// words while the measured line still fits. A single word wider than
// maxWidth is kept whole on its own line. The result always has at least
// one line.
func (m *Metrics) Wrap(text string, font Font, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines   []string
		current string
	)
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if m.Width(candidate, font, size) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
