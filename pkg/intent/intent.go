package intent

// Label is the search-intent category assigned to a keyword
type Label string

const (
	Informational Label = "informational"
	Navigational  Label = "navigational"
	Commercial    Label = "commercial"
	Transactional Label = "transactional"
	Unknown       Label = "unknown"
)

// Priority orders intents for tie-breaking: higher value wins.
// Transactional outranks commercial, then navigational, then informational.
func Priority(label Label) int {
	switch label {
	case Transactional:
		return 4
	case Commercial:
		return 3
	case Navigational:
		return 2
	case Informational:
		return 1
	default:
		return 0
	}
}
