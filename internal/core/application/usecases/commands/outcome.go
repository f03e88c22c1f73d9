package commands

// Outcome tells the caller whether an operation changed anything and, if not,
// why it was skipped. Ignored outcomes are not errors.
type Outcome int

const (
	Applied Outcome = iota
	IgnoredUnknownOrder
	IgnoredPrecondition
	IgnoredNoDriver
	IgnoredDuplicate
	IgnoredUnknownRestaurant
)

// String describes the outcome for logs.
func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case IgnoredUnknownOrder:
		return "ignored: unknown order"
	case IgnoredPrecondition:
		return "ignored: precondition not met"
	case IgnoredNoDriver:
		return "ignored: no driver available"
	case IgnoredDuplicate:
		return "ignored: duplicate"
	case IgnoredUnknownRestaurant:
		return "ignored: unknown restaurant"
	default:
		return "unknown"
	}
}

// IsApplied reports whether state changed.
func (o Outcome) IsApplied() bool {
	return o == Applied
}
