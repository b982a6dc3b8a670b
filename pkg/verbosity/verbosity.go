package verbosity

import "fmt"

// Verbosity controls how many suggestions a single-word lookup returns.
type Verbosity int

const (
	// Top returns the most frequent suggestion among those with the smallest distance.
	Top Verbosity = iota
	// Closest returns every suggestion tied at the smallest distance found.
	Closest
	// All returns every suggestion within the distance budget.
	All
)

func (v Verbosity) String() string {
	switch v {
	case Top:
		return "top"
	case Closest:
		return "closest"
	case All:
		return "all"
	}
	return fmt.Sprintf("verbosity(%d)", int(v))
}

// Parse maps a name ("top", "closest", "all") to a Verbosity.
func Parse(name string) (Verbosity, error) {
	switch name {
	case "top", "TOP", "Top":
		return Top, nil
	case "closest", "CLOSEST", "Closest":
		return Closest, nil
	case "all", "ALL", "All":
		return All, nil
	}
	return Top, fmt.Errorf("unknown verbosity %q", name)
}
