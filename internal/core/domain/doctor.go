package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrDoctorNotFound = errors.New("doctor not found")
var ErrRoleMismatch = errors.New("user role does not match profile type")
var ErrInvalidAvailability = errors.New("invalid availability window")

// TimeWindow is a daily working interval in "HH:MM" 24-hour form.
type TimeWindow struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// WeeklyAvailability maps a weekday to the doctor's working window for that
// day. A missing day means the doctor does not see patients that day.
type WeeklyAvailability map[time.Weekday]TimeWindow

// Doctor extends a User with role=doctor. Lifecycle is tied to the owning user.
type Doctor struct {
	UserID         string             `json:"user_id"`
	Specialization string             `json:"specialization"`
	LicenseNumber  string             `json:"license_number"`
	Availability   WeeklyAvailability `json:"availability"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Validate checks that every window is well-formed and starts before it ends.
func (wa WeeklyAvailability) Validate() error {
	for day, w := range wa {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidAvailability, day)
		}
		start, err := parseClock(w.Start)
		if err != nil {
			return fmt.Errorf("%w: %s start %q", ErrInvalidAvailability, day, w.Start)
		}
		end, err := parseClock(w.End)
		if err != nil {
			return fmt.Errorf("%w: %s end %q", ErrInvalidAvailability, day, w.End)
		}
		if !start.Before(end) {
			return fmt.Errorf("%w: %s window %s-%s", ErrInvalidAvailability, day, w.Start, w.End)
		}
	}
	return nil
}

// Covers reports whether t falls inside the doctor's window for t's weekday.
// An absent day never covers anything.
func (wa WeeklyAvailability) Covers(t time.Time) bool {
	w, ok := wa[t.Weekday()]
	if !ok {
		return false
	}
	start, err1 := parseClock(w.Start)
	end, err2 := parseClock(w.End)
	if err1 != nil || err2 != nil {
		return false
	}
	clock := time.Date(0, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
	return !clock.Before(start) && clock.Before(end)
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}
