package summary

import (
	"fmt"
	"strings"
)

// Verbosity selects how long a summary should be.
type Verbosity int

const (
	VeryShort Verbosity = iota
	Short
	Medium
	Long
)

var verbosityLabels = [...]string{
	VeryShort: "Very Short",
	Short:     "Short",
	Medium:    "Medium",
	Long:      "Long",
}

func (v Verbosity) String() string {
	if !v.valid() {
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
	return verbosityLabels[v]
}

func (v Verbosity) valid() bool {
	return v >= VeryShort && v <= Long
}

func (v Verbosity) MarshalText() ([]byte, error) {
	if !v.valid() {
		return nil, fmt.Errorf("invalid verbosity %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *Verbosity) UnmarshalText(b []byte) error {
	parsed, err := ParseVerbosity(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerbosity accepts the display labels ("Very Short", "Short", "Medium", "Long"),
// ignoring case and treating '_' or '-' as a space.
func ParseVerbosity(label string) (Verbosity, error) {
	norm := strings.ToLower(strings.TrimSpace(label))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")
	for i, l := range verbosityLabels {
		if strings.ToLower(l) == norm {
			return Verbosity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown summary length %q", label)
}

// Labels lists the verbosity labels from shortest to longest.
func Labels() []string {
	out := make([]string, len(verbosityLabels))
	copy(out, verbosityLabels[:])
	return out
}
