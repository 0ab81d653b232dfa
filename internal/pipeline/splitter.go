package pipeline

import (
	"regexp"
	"strings"
)

// numberedItem matches a line that starts with one or more digits followed
// immediately by a numbering marker: ")", ".", "-" or a space.
var numberedItem = regexp.MustCompile(`^\d+[).\- ][).\-\s]*`)

// Split decomposes a compound user input into an ordered sequence of
// independent questions, one per non-empty line. Explicitly numbered items
// lose their leading digits and marker characters; other lines are kept
// verbatim.
func Split(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if marker := numberedItem.FindString(line); marker != "" {
			rest := strings.TrimSpace(line[len(marker):])
			if rest == "" {
				continue
			}
			questions = append(questions, rest)
			continue
		}
		questions = append(questions, line)
	}
	return questions
}
