package messages

// PatternTestedMsg is sent when a pattern has been run against the library
type PatternTestedMsg struct {
	Pattern string   // The pattern that was tested
	Count   int      // Number of matching assets
	Samples []string // First matching filenames
	Err     error    // Set when the pattern does not compile
}

// PatternChosenMsg is sent when the user confirms a pattern
type PatternChosenMsg struct {
	Pattern string
	Count   int
}
