package domain

// Suggestion is a known word close to a word the dictionary has nothing for.
type Suggestion struct {
	Word  string
	Ratio float64
}
