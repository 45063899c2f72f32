package domain

// EventKind tags a markup traversal event.
type EventKind int

const (
	EventStart EventKind = iota
	EventText
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventText:
		return "text"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one step of a document traversal: an element opening, a text
// run, or an element closing. Name is set for start/end, Text for text.
type Event struct {
	Kind EventKind
	Name string
	Text string
	Line int
}

// Document is a parsed markup document as a flat event stream.
type Document struct {
	Path   string
	Events []Event
}
