package orchestration

import "strings"

// Queue is the ordered list of quizzes requested for a run.
type Queue struct {
	names []string
}

// NewQueue returns a queue of the non-blank names in order.
func NewQueue(names ...string) *Queue {
	q := &Queue{}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			q.names = append(q.names, n)
		}
	}
	return q
}

// Pop removes and returns the front quiz. It returns false once the queue is
// empty.
func (q *Queue) Pop() (string, bool) {
	if len(q.names) == 0 {
		return "", false
	}
	n := q.names[0]
	q.names = q.names[1:]
	return n, true
}

// Len returns the number of quizzes still queued.
func (q *Queue) Len() int {
	return len(q.names)
}

// Remaining returns a copy of the queued names.
func (q *Queue) Remaining() []string {
	return append([]string(nil), q.names...)
}
