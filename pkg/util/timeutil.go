package util

import "time"

// NowUTC is a variable so tests can pin history timestamps.
var NowUTC = func() time.Time {
	return time.Now().UTC()
}
