package sim

import "zonecrawl/server/internal/nav"

// walkQueue holds the remaining steps of a queued multi-cell walk. The
// caller plays them back one turn at a time; fresh input resets the queue
// (interrupt-and-restart, never enqueue-behind).
type walkQueue struct {
	steps []nav.Step
}

func (q *walkQueue) Reset() {
	q.steps = nil
}

func (q *walkQueue) Replace(steps []nav.Step) {
	q.steps = append([]nav.Step(nil), steps...)
}

func (q *walkQueue) Pop() (nav.Step, bool) {
	if len(q.steps) == 0 {
		return nav.Step{}, false
	}
	step := q.steps[0]
	q.steps = q.steps[1:]
	return step, true
}

func (q *walkQueue) Len() int {
	return len(q.steps)
}
