package report

// modeTracker counts occurrences of categorical values while preserving the
// order they were first seen. Ties on the highest count resolve to the
// earliest value, so selection never depends on map iteration or sort
// stability.
type modeTracker struct {
	counts map[string]int
	order  []string
}

func newModeTracker() *modeTracker {
	return &modeTracker{counts: make(map[string]int)}
}

func (m *modeTracker) Add(value string) {
	if value == "" {
		return
	}
	if _, seen := m.counts[value]; !seen {
		m.order = append(m.order, value)
	}
	m.counts[value]++
}

// Mode returns the most frequent value, first-seen on ties, or "" when no
// values were recorded.
func (m *modeTracker) Mode() string {
	best := ""
	bestCount := 0
	for _, v := range m.order {
		if m.counts[v] > bestCount {
			best = v
			bestCount = m.counts[v]
		}
	}
	return best
}
