package services

import "time"

// nowUTC is swapped in tests that need fixed timestamps.
var nowUTC = func() time.Time {
	return time.Now().UTC()
}
