package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// wordWrap breaks text into lines no longer than limit runes, splitting on
// spaces. Words longer than the limit land on their own line unbroken.
func wordWrap(text string, limit int) string {
	if limit <= 0 {
		return text
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > limit {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// ordinal renders a one-based list position like " 3." padded to align with
// the widest index in the list.
func ordinal(index, total int) string {
	width := len(strconv.Itoa(total))
	return fmt.Sprintf("%*d.", width, index+1)
}
