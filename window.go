package profuse

// window is a fixed-capacity record of the most recent call outcomes,
// stored run-length encoded: each element is a maximal run of same-outcome
// results, positive for successes, negative for failures, oldest first.
// Memory is bounded by the number of outcome flips in the window rather
// than the window size.
type window struct {
	runs []int
	size int
}

func newWindow(size int) *window {
	w := &window{size: size}
	w.clear()
	return w
}

// clear resets the window to a perfect record: one success run spanning
// the full capacity.
func (w *window) clear() {
	w.runs = append(w.runs[:0], w.size)
}

// record appends one outcome at the newest end and evicts one at the
// oldest end, keeping the total outcome count constant at size.
func (w *window) record(ok bool) {
	unit := 1
	if !ok {
		unit = -1
	}

	last := len(w.runs) - 1
	if last >= 0 && (w.runs[last] > 0) == ok {
		w.runs[last] += unit
	} else {
		w.runs = append(w.runs, unit)
	}

	// Shrink the oldest run by one; drop it once empty.
	if w.runs[0] > 0 {
		w.runs[0]--
	} else {
		w.runs[0]++
	}
	if w.runs[0] == 0 {
		w.runs = w.runs[1:]
	}
}

// successRate returns the fraction of recorded outcomes that were
// successes, walked oldest to newest. The count bound guards against a
// malformed window; a well-formed walk consumes every run exactly.
func (w *window) successRate() float64 {
	var count, score int
	for _, run := range w.runs {
		mag := run
		if mag < 0 {
			mag = -mag
		}
		if count+mag > w.size {
			break
		}
		count += mag
		if run > 0 {
			score += run
		}
	}
	return float64(score) / float64(count)
}
