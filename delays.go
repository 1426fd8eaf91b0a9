package delayvault

import "fmt"

// Delays is a schedule of minimum holding periods, in seconds, that a vault
// is committed to. Start is the earliest moment funds can leave the vault,
// cliff and finish are forwarded to the vesting facility.
type Delays struct {
	Start  uint64 `json:"start"`
	Cliff  uint64 `json:"cliff"`
	Finish uint64 `json:"finish"`
}

// IsZero returns true if no delay is set.
func (d Delays) IsZero() bool {
	return d.Start == 0 && d.Cliff == 0 && d.Finish == 0
}

// Covers returns true if every delay is at least as long as the
// corresponding one in min.
func (d Delays) Covers(min Delays) bool {
	return d.Start >= min.Start && d.Cliff >= min.Cliff && d.Finish >= min.Finish
}

// Extends returns true if at least one delay is strictly longer than the
// corresponding one in prev.
func (d Delays) Extends(prev Delays) bool {
	return d.Start > prev.Start || d.Cliff > prev.Cliff || d.Finish > prev.Finish
}

// Longest returns the greatest of the three delays.
func (d Delays) Longest() uint64 {
	max := d.Start
	if d.Cliff > max {
		max = d.Cliff
	}
	if d.Finish > max {
		max = d.Finish
	}
	return max
}

// WithMinStart returns a copy with the start delay raised to floor if it
// is shorter.
func (d Delays) WithMinStart(floor uint64) Delays {
	if d.Start < floor {
		d.Start = floor
	}
	return d
}

func (d Delays) String() string {
	return fmt.Sprintf("start=%d cliff=%d finish=%d", d.Start, d.Cliff, d.Finish)
}
