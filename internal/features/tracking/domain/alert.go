package domain

import "fmt"

// PercentChange returns the signed change from previous to current as a percentage.
// Callers must handle previous == 0 themselves.
func PercentChange(previous, current float64) float64 {
	return ((current - previous) / previous) * 100
}

// AlertMessage renders the notification body for a price change.
// When previous is zero the change line reads "n/a" since no percentage exists.
func AlertMessage(name string, previous, current float64) string {
	direction := "📈"
	if current < previous {
		direction = "📉"
	}

	change := "n/a"
	if previous != 0 {
		change = fmt.Sprintf("%+.2f%%", PercentChange(previous, current))
	}

	return fmt.Sprintf("%s %s Price Alert!\nPrevious: $%.2f\nCurrent: $%.2f\nChange: %s",
		direction, name, previous, current, change)
}
