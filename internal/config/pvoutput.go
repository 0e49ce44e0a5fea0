package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	pvPlantURLsEnv           = "PV_PLANT_URLS"
	pvFetchTimeoutSecondsEnv = "PV_FETCH_TIMEOUT_SECONDS"
	plantCacheTTLHoursEnv    = "PLANT_CACHE_TTL_HOURS"
	pvMaxPageBytesEnv        = "PV_MAX_PAGE_BYTES"

	defaultPVFetchTimeoutSeconds = 30
	defaultPlantCacheTTLHours    = 24
	defaultPVMaxPageBytes        = 4 << 20
)

// Two Sydney plants for 2020-07-04 local time.
var defaultPlantURLs = []string{
	"https://pvoutput.org/intraday.jsp?id=31472&sid=28833&dt=20200704&gs=0&m=0",
	"https://pvoutput.org/intraday.jsp?id=83097&sid=73671&dt=20200704&gs=0&m=0",
}

type PVOutputConfig struct {
	PlantURLs     []string
	FetchTimeout  time.Duration
	PlantCacheTTL time.Duration
	MaxPageBytes  int64
}

func LoadPVOutputConfig() *PVOutputConfig {
	urls := parseList(os.Getenv(pvPlantURLsEnv))
	if len(urls) == 0 {
		urls = append([]string(nil), defaultPlantURLs...)
	}

	timeoutSeconds := defaultPVFetchTimeoutSeconds
	if v := os.Getenv(pvFetchTimeoutSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeoutSeconds = parsed
		}
	}

	cacheTTLHours := defaultPlantCacheTTLHours
	if v := os.Getenv(plantCacheTTLHoursEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			cacheTTLHours = parsed
		}
	}

	maxPageBytes := int64(defaultPVMaxPageBytes)
	if v := os.Getenv(pvMaxPageBytesEnv); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			maxPageBytes = parsed
		}
	}

	return &PVOutputConfig{
		PlantURLs:     urls,
		FetchTimeout:  time.Duration(timeoutSeconds) * time.Second,
		PlantCacheTTL: time.Duration(cacheTTLHours) * time.Hour,
		MaxPageBytes:  maxPageBytes,
	}
}

func (c *PVOutputConfig) Validate() error {
	if c == nil || len(c.PlantURLs) == 0 {
		return ErrNoPlantURLs
	}
	return nil
}

func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
