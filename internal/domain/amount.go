package domain

import "fmt"

// FormatAmount renders a balance compactly for terminal output.
func FormatAmount(v float64) string {
	if v < 1_000 {
		return fmt.Sprintf("%.0f", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", v/1_000)
	}

	return fmt.Sprintf("%.1fM", v/1_000_000)
}
