package historysync

// Interval is an inclusive block range and the cursor stored once it is scanned
type Interval struct {
	From   uint64
	To     uint64
	Cursor uint64
}

// Span is the number of blocks the interval covers
func (i Interval) Span() uint64 {
	return i.To - i.From + 1
}

// NextInterval picks the next chunk of at most step blocks from current
// toward target. Moving forward the cursor lands on the upper bound, moving
// backward on the lower one. ok is false when current already equals target.
func NextInterval(current, target, step uint64) (interval Interval, ok bool) {
	if step == 0 {
		step = 1
	}

	switch {
	case current < target:
		upper := target
		if target-current > step {
			upper = current + step
		}
		return Interval{From: current, To: upper, Cursor: upper}, true
	case current > target:
		lower := target
		if current-target > step {
			lower = current - step
		}
		return Interval{From: lower, To: current, Cursor: lower}, true
	default:
		return Interval{From: current, To: current, Cursor: current}, false
	}
}

// Bounds returns the cursor and target a resolver run works between: both
// are clamped to head so a cursor never runs ahead of the chain
func Bounds(syncHeight uint64, endHeight *uint64, head uint64) (current, target uint64) {
	current = min(syncHeight, head)
	target = head
	if endHeight != nil {
		target = min(*endHeight, head)
	}
	return current, target
}
