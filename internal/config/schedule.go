package config

import (
	"os"
	"strconv"
	"time"
)

const (
	scheduleDateEnv            = "SCHEDULE_DATE"
	scheduleStartHourEnv       = "SCHEDULE_START_HOUR"
	scheduleEndHourEnv         = "SCHEDULE_END_HOUR"
	scheduleIntervalMinutesEnv = "SCHEDULE_INTERVAL_MINUTES"
	scheduleTimeZoneEnv        = "SCHEDULE_TIME_ZONE"
	sampleDemandRoundsEnv      = "SAMPLE_DEMAND_ROUNDS"

	scheduleDateLayout = "2006-01-02"

	defaultScheduleDate            = "2020-07-03"
	defaultScheduleStartHour       = 6
	defaultScheduleEndHour         = 18
	defaultScheduleIntervalMinutes = 5
	defaultSampleDemandRounds      = 5
)

type ScheduleConfig struct {
	Date               time.Time
	StartHour          int
	EndHour            int
	Interval           time.Duration
	SampleDemandRounds int
}

func LoadScheduleConfig() (*ScheduleConfig, error) {
	loc := time.UTC
	if tz := os.Getenv(scheduleTimeZoneEnv); tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		}
	}

	rawDate := os.Getenv(scheduleDateEnv)
	if rawDate == "" {
		rawDate = defaultScheduleDate
	}
	date, err := ParseScheduleDate(rawDate, loc)
	if err != nil {
		return nil, err
	}

	startHour := defaultScheduleStartHour
	if v := os.Getenv(scheduleStartHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			startHour = parsed
		}
	}

	endHour := defaultScheduleEndHour
	if v := os.Getenv(scheduleEndHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			endHour = parsed
		}
	}

	intervalMinutes := defaultScheduleIntervalMinutes
	if v := os.Getenv(scheduleIntervalMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			intervalMinutes = parsed
		}
	}

	rounds := defaultSampleDemandRounds
	if v := os.Getenv(sampleDemandRoundsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			rounds = parsed
		}
	}

	return &ScheduleConfig{
		Date:               date,
		StartHour:          startHour,
		EndHour:            endHour,
		Interval:           time.Duration(intervalMinutes) * time.Minute,
		SampleDemandRounds: rounds,
	}, nil
}

// ParseScheduleDate parses a YYYY-MM-DD date at midnight in loc.
func ParseScheduleDate(raw string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(scheduleDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, ErrInvalidScheduleDate
	}
	return date, nil
}

func (c *ScheduleConfig) Validate() error {
	if c.StartHour < 0 || c.EndHour > 24 || c.StartHour >= c.EndHour {
		return ErrInvalidScheduleHours
	}
	return nil
}
