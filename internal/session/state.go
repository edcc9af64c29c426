package session

// State is a step of the interactive pattern session
type State int

const (
	CollectExamples State = iota
	Analyze
	DisplaySuggestions
	SelectPattern
	TestAgainstCorpus
	Confirm
	Done
	Cancelled
)

var stateNames = map[State]string{
	CollectExamples:    "CollectExamples",
	Analyze:            "Analyze",
	DisplaySuggestions: "DisplaySuggestions",
	SelectPattern:      "SelectPattern",
	TestAgainstCorpus:  "TestAgainstCorpus",
	Confirm:            "Confirm",
	Done:               "Done",
	Cancelled:          "Cancelled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether the session stops in this state
func (s State) Terminal() bool {
	return s == Done || s == Cancelled
}
