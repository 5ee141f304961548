package cli

import "fmt"

// truncate shortens a string for table display
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// checkmark renders a boolean as a terminal-friendly marker
func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "-"
}

// percent renders a [0,1] fraction as a percentage
func percent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
