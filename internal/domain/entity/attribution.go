package entity

// Attribution credits the source of a definition.
type Attribution struct {
	Text string
	URL  string
}
