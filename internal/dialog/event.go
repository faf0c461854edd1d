// Package dialog implements the conversation state machine that drives the
// trade journal through a chat interface. The transport layer delivers one
// event per turn; the engine maps (state, event) to outbound messages and a
// new state. The engine never polls or pushes on its own.
package dialog

// EventKind distinguishes the two inbound event shapes.
type EventKind int

const (
	// EventText is a free-form text message typed by the user.
	EventText EventKind = iota
	// EventChoice is a selection of a previously offered choice token.
	EventChoice
)

// Event is one inbound user turn, tagged by the transport with the chat it
// belongs to (the chat id is passed alongside, not inside the event).
type Event struct {
	Kind       EventKind
	Data       string // raw text, or the chosen token
	Attachment string // optional reply-attachment reference (e.g. a file id)
}

// Text builds a text event.
func Text(s string) Event {
	return Event{Kind: EventText, Data: s}
}

// Choice builds a choice-selection event.
func Choice(token string) Event {
	return Event{Kind: EventChoice, Data: token}
}

// WithAttachment attaches a reference to the event.
func (e Event) WithAttachment(ref string) Event {
	e.Attachment = ref
	return e
}

// Button is one selectable option offered with a message.
type Button struct {
	Label string
	Token string
}

// Message is one outbound chat message. Buttons, when present, define the
// choice tokens valid for the next turn. Document references an exported
// file handed over by the export collaborator.
type Message struct {
	Text     string
	Buttons  []Button
	Document string
}

// Distinguished tokens recognized across states.
const (
	tokenCancel = "cancel"
	tokenBack   = "back"
	tokenSkip   = "skip"
)

// isCancel reports whether the event is the global cancel, valid from every
// non-idle state. The slash-command spelling mirrors the chat transport.
func isCancel(ev Event) bool {
	if ev.Kind == EventChoice {
		return ev.Data == tokenCancel
	}
	return ev.Data == "/cancel"
}
