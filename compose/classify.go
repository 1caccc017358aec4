package compose

import "github.com/erraggy/oasnorm/document"

// Classification selects the allOf merge strategy.
type Classification int

const (
	// ScalarComposition merges constraint keywords (type, format, enum, const...).
	ScalarComposition Classification = iota
	// ObjectComposition merges properties and required lists into a closed object.
	ObjectComposition
)

func (c Classification) String() string {
	switch c {
	case ObjectComposition:
		return "object"
	case ScalarComposition:
		return "scalar"
	default:
		return "unknown"
	}
}

// Classify reports ObjectComposition when any element declares type object or
// carries a properties map or a required list.
func Classify(elements []document.Map) Classification {
	for _, el := range elements {
		if el["type"] == "object" {
			return ObjectComposition
		}
		if _, ok := el["properties"].(document.Map); ok {
			return ObjectComposition
		}
		if _, ok := el["required"].(document.List); ok {
			return ObjectComposition
		}
	}
	return ScalarComposition
}
