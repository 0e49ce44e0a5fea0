package schedulerecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID        string
	BigQueryDataset          string
	BigQuerySupplyTable      string
	BigQueryConsumptionTable string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("SCHEDULE_RESULTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "schedule_results"),

		BigQueryProjectID:        getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:          getEnvOrDefault("BIGQUERY_DATASET", "schedule_results"),
		BigQuerySupplyTable:      getEnvOrDefault("BIGQUERY_SUPPLY_TABLE", "supply_instants"),
		BigQueryConsumptionTable: getEnvOrDefault("BIGQUERY_CONSUMPTION_TABLE", "demand_consumption"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
