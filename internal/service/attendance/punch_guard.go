package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// DefaultPunchCooldown is the window in which a repeated punch of the same
// type is treated as an accidental double-tap.
const DefaultPunchCooldown = 5 * time.Minute

// PunchGuard enforces punch-sequencing invariants against the punches a user
// has already recorded today. It holds no state besides configuration.
type PunchGuard struct {
	cooldown time.Duration
}

func NewPunchGuard(cooldown time.Duration) *PunchGuard {
	if cooldown <= 0 {
		cooldown = DefaultPunchCooldown
	}
	return &PunchGuard{cooldown: cooldown}
}

// Check validates a new punch of punchType at now against today's punches.
// The cooldown check runs first so a rapid double-tap surfaces as
// ErrDuplicatePunch rather than a sequencing error.
func (g *PunchGuard) Check(today []attendance.AttendanceRecord, punchType attendance.PunchType, now time.Time) error {
	var hasIn, hasOut bool
	for _, rec := range today {
		if rec.Type == punchType {
			elapsed := now.Sub(rec.Timestamp)
			if elapsed >= 0 && elapsed < g.cooldown {
				return attendance.ErrDuplicatePunch
			}
		}
		switch rec.Type {
		case attendance.PunchTypeIn:
			hasIn = true
		case attendance.PunchTypeOut:
			hasOut = true
		}
	}

	switch punchType {
	case attendance.PunchTypeIn:
		if hasIn {
			return attendance.ErrAlreadyClockedIn
		}
	case attendance.PunchTypeOut:
		if !hasIn {
			return attendance.ErrNoClockInYet
		}
		if hasOut {
			return attendance.ErrAlreadyClockedOut
		}
	}

	return nil
}
