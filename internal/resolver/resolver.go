// Package resolver reduces a copied chat reply to a single answer slot.
package resolver

import (
	"fmt"
	"strings"

	"github.com/spboyer/quizpilot/internal/models"
)

// ResolutionError is returned when a reply holds no usable slot letter.
// There is no fallback: the caller must abort rather than click a guess.
type ResolutionError struct {
	Raw string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve an answer letter from response %q", e.Raw)
}

var quoteReplacer = strings.NewReplacer(`"`, "", "'", "", "“", "", "”", "", "‘", "", "’", "", "`", "")

// Resolve normalizes raw to one of A-D.
//
// Periods are dropped and the text upper-cased. A bare letter is returned
// directly; otherwise quotes are removed and the first single-character
// whitespace token that names a slot wins.
func Resolve(raw string) (models.Letter, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(raw, ".", ""))

	if l := models.Letter(cleaned); len(cleaned) == 1 && l.Valid() {
		return l, nil
	}

	for _, token := range strings.Fields(quoteReplacer.Replace(cleaned)) {
		if l := models.Letter(token); len(token) == 1 && l.Valid() {
			return l, nil
		}
	}

	return "", &ResolutionError{Raw: raw}
}
