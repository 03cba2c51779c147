package phoneinfo

import "time"

// SetClock replaces the time source used for expiry.
func (r *InMemoryPhoneInfoRepo) SetClock(now func() time.Time) {
	r.now = now
}
