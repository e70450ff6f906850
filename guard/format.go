package guard

// Format selects how Guard.Close renders its final summary.
type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatJSONPretty
)
