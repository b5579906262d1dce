package resync

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule computes the next resync time from a cron expression.
type Schedule struct {
	spec     string
	schedule cron.Schedule
}

// ParseSchedule parses a standard five field cron expression or a
// descriptor such as @hourly. Expressions without a CRON_TZ= or TZ= prefix
// are evaluated in UTC.
func ParseSchedule(spec string) (*Schedule, error) {
	fullSpec := withTimezone(spec)

	schedule, err := _parser.Parse(fullSpec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return &Schedule{spec: spec, schedule: schedule}, nil
}

// Next returns the next occurrence strictly after `after`.
func (s *Schedule) Next(after time.Time) time.Time {
	return s.schedule.Next(after)
}

func (s *Schedule) String() string {
	return s.spec
}

func withTimezone(spec string) string {
	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") || strings.HasPrefix(spec, "@") {
		return spec
	}

	return "CRON_TZ=UTC " + spec
}
