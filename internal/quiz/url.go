package quiz

import (
	"strings"
)

// BuildQuizURL returns the deep link to a named assessment. Navigating to it
// directly is not reliable on the live site, so the driver goes through
// search instead; the link is printed for operators.
func BuildQuizURL(base, quiz string, practice bool) string {
	mode := "?normal_mode"
	if practice {
		mode = "?practiceModal=&practiceMode=true"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.ReplaceAll(quiz, " ", "%20") + mode
}
