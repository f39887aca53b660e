package querystate

// Location is an in-memory Navigator. It records history pushes and counts
// in-place replacements.
type Location struct {
	uri          string
	history      []string
	replacements int
}

// NewLocation starts a location at uri.
func NewLocation(uri string) *Location {
	return &Location{uri: uri}
}

func (l *Location) URI() string { return l.uri }

// ReplaceURI swaps the current entry without touching history.
func (l *Location) ReplaceURI(uri string) {
	l.uri = uri
	l.replacements++
}

// Navigate pushes the current entry onto history and moves to uri.
func (l *Location) Navigate(uri string) {
	l.history = append(l.history, l.uri)
	l.uri = uri
}

// Back returns to the previous history entry, if any.
func (l *Location) Back() bool {
	if len(l.history) == 0 {
		return false
	}
	l.uri = l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]
	return true
}

// HistoryLen returns the number of pushed entries.
func (l *Location) HistoryLen() int { return len(l.history) }

// Replacements returns how many times ReplaceURI was called.
func (l *Location) Replacements() int { return l.replacements }
