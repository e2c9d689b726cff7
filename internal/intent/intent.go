package intent

import "strings"

// Intent is the closed set of actions a command can resolve to.
type Intent string

const (
	SendEmail      Intent = "send_email"
	CreateEvent    Intent = "create_event"
	Exit           Intent = "exit"
	LookAtScreen   Intent = "look_at_screen"
	AnswerQuestion Intent = "answer_question"
	Unknown        Intent = "unknown"
)

// Actionable lists the labels the classifier is allowed to answer with.
var Actionable = []Intent{
	SendEmail,
	CreateEvent,
	Exit,
	LookAtScreen,
	AnswerQuestion,
}

func (i Intent) String() string { return string(i) }

// Valid reports whether i belongs to the closed set, Unknown included.
func (i Intent) Valid() bool {
	if i == Unknown {
		return true
	}
	for _, a := range Actionable {
		if i == a {
			return true
		}
	}
	return false
}

// Parse lower-cases and trims raw and maps anything that is not exactly a
// known label to Unknown.
func Parse(raw string) Intent {
	in := Intent(strings.ToLower(strings.TrimSpace(raw)))
	if !in.Valid() {
		return Unknown
	}
	return in
}
