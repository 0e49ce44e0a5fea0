package config

import "errors"

var (
	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidScheduleDate  = errors.New("SCHEDULE_DATE must be formatted as YYYY-MM-DD")
	ErrInvalidScheduleHours = errors.New("SCHEDULE_START_HOUR must be before SCHEDULE_END_HOUR within 0-24")
	ErrNoPlantURLs          = errors.New("PV_PLANT_URLS must contain at least one URL")
)
