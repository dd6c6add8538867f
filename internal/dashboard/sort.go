package dashboard

import "sort"

// SortKey selects the table ordering.
type SortKey int

const (
	// SortInput keeps the order targets were given in.
	SortInput SortKey = iota
	// SortName orders alphabetically by target.
	SortName
	// SortLatency orders by recent average latency, fastest first. Hosts
	// without replies sink to the bottom.
	SortLatency
	// SortLoss orders by loss ratio, lossiest first.
	SortLoss

	sortKeyCount
)

// String returns the footer label for the sort key.
func (k SortKey) String() string {
	switch k {
	case SortInput:
		return "input"
	case SortName:
		return "name"
	case SortLatency:
		return "latency"
	case SortLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// cycle advances to the next sort key.
func (k SortKey) cycle() SortKey {
	return (k + 1) % sortKeyCount
}

// sortRows orders m.rows by the active key. The sort is stable so hosts that
// compare equal keep their input order, which stops the table from jittering
// between refreshes.
func (m *Model) sortRows() {
	less := m.lessFunc()
	sort.SliceStable(m.rows, func(i, j int) bool {
		if m.sortDesc {
			i, j = j, i
		}
		return less(m.rows[i], m.rows[j])
	})
}

func (m *Model) lessFunc() func(a, b row) bool {
	switch m.sortKey {
	case SortName:
		return func(a, b row) bool { return a.snap.Target < b.snap.Target }
	case SortLatency:
		return func(a, b row) bool {
			ar, br := a.snap.HasReplies(), b.snap.HasReplies()
			if ar != br {
				return ar
			}
			if !ar {
				return a.index < b.index
			}
			return a.snap.RecentAvg < b.snap.RecentAvg
		}
	case SortLoss:
		return func(a, b row) bool { return a.snap.Loss > b.snap.Loss }
	default:
		return func(a, b row) bool { return a.index < b.index }
	}
}
