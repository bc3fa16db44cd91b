// Package transcript persists the prompts sent and answers chosen during a
// quiz run as a flat text file.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spboyer/quizpilot/internal/models"
)

// sanitize replaces characters that are unsafe in filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// symbolWords keeps names such as "C", "C#" and "C++" apart once symbols are stripped.
var symbolWords = strings.NewReplacer("#", " sharp", "+", " plus")

func sanitizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(symbolWords.Replace(s)), "-")
	s = unsafeChars.ReplaceAllString(s, "")
	if s == "" {
		s = "unnamed"
	}
	return s
}

// Filename returns the transcript filename for a quiz.
func Filename(quiz string) string {
	return sanitizeName(quiz) + "-transcript.txt"
}

// Format renders entries one per line. Embedded newlines are folded so the
// line count always equals the entry count.
func Format(entries []models.TranscriptEntry) []byte {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(models.CollapseLines(e.Text))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Write replaces the transcript for quiz in dir with entries.
func Write(dir, quiz string, entries []models.TranscriptEntry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create transcript dir: %w", err)
	}

	path := filepath.Join(dir, Filename(quiz))

	// write next to the target and rename so an interrupted flush never
	// leaves a truncated transcript behind
	tmp, err := os.CreateTemp(dir, ".transcript-*")
	if err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(Format(entries)); err != nil {
		tmp.Close() //nolint:errcheck
		return "", fmt.Errorf("write transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	return path, nil
}

// Recorder is the append-only transcript of one run.
type Recorder struct {
	dir         string
	quiz        string
	incremental bool
	entries     []models.TranscriptEntry
}

// NewRecorder returns an empty transcript for quiz. With incremental set,
// every Append also rewrites the file.
func NewRecorder(dir, quiz string, incremental bool) *Recorder {
	return &Recorder{dir: dir, quiz: quiz, incremental: incremental}
}

// Append adds entries to the end of the transcript.
func (r *Recorder) Append(entries ...models.TranscriptEntry) error {
	r.entries = append(r.entries, entries...)
	if r.incremental {
		_, err := r.Flush()
		return err
	}
	return nil
}

// Entries returns a copy of the recorded entries in order.
func (r *Recorder) Entries() []models.TranscriptEntry {
	return append([]models.TranscriptEntry(nil), r.entries...)
}

// Len returns the number of entries recorded so far.
func (r *Recorder) Len() int {
	return len(r.entries)
}

// Incremental reports whether Append writes through to disk.
func (r *Recorder) Incremental() bool {
	return r.incremental
}

// Path is where Flush writes.
func (r *Recorder) Path() string {
	return filepath.Join(r.dir, Filename(r.quiz))
}

// Flush writes every entry recorded so far.
func (r *Recorder) Flush() (string, error) {
	return Write(r.dir, r.quiz, r.entries)
}
