// Package notify sends best-effort desktop notifications. Delivery
// failures are ignored; a missed notification never breaks tracking.
package notify

import "github.com/gen2brain/beeep"

func init() {
	beeep.AppName = "habitr"
}

// TimerCapped alerts the user that the live timer hit the 6-hour cap
// and was finalized automatically.
func TimerCapped(habitName string) {
	_ = beeep.Alert("Timer finished", habitName+" reached the 6 hour session cap and was saved.", "")
}
