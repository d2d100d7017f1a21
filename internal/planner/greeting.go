package planner

import "time"

// DisplayNameKey is the settings slot the greeting reads the user's
// name from.
const DisplayNameKey = "display_name"

// DefaultDisplayName is used when no name has been stored.
const DefaultDisplayName = "there"

// Greeting returns an hour-bucketed salutation addressed to name,
// falling back to DefaultDisplayName when name is empty.
func Greeting(now time.Time, name string) string {
	if name == "" {
		name = DefaultDisplayName
	}
	var part string
	switch hour := now.Hour(); {
	case hour >= 6 && hour < 12:
		part = "Good Morning"
	case hour >= 12 && hour < 17:
		part = "Good Afternoon"
	case hour >= 17 && hour < 21:
		part = "Good Evening"
	default:
		part = "Good Night"
	}
	return part + ", " + name + "!"
}
