package stream

import "time"

// Backoff computes linear reconnect delays: Base + attempt*Increment,
// saturating at Cap. Attempt counting is owned by the manager; the zeroth
// retry already waits Base.
type Backoff struct {
	Base      time.Duration
	Increment time.Duration
	Cap       time.Duration
}

// Delay returns the wait before reconnect attempt n (0-based).
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := b.Base + time.Duration(attempt)*b.Increment
	// Guard against overflow for absurd attempt counts.
	if d < b.Base || d > b.Cap {
		return b.Cap
	}
	return d
}
