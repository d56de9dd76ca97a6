// Package devices maps raw User-Agent strings to the device and browser
// labels stored on meeting participants.
package devices

import (
	"github.com/mileusna/useragent"
)

// Info is the classified result for one User-Agent header.
type Info struct {
	Device  string
	Browser string
}

// Classify parses a User-Agent header. The device type falls back to
// "Desktop" when the string carries no device hint; the browser name may
// stay empty for unknown agents.
func Classify(userAgent string) Info {
	ua := useragent.Parse(userAgent)

	device := "Desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	return Info{Device: device, Browser: ua.Name}
}
