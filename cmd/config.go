package cmd

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config carries everything the application needs from the environment:
// database coordinates, the HTTP port, the batching policy knobs and the
// sweep schedules (six-field cron expressions, seconds first).
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BatchMaxWeightKg   decimal.Decimal
	BatchMaxOrderCount int
	BatchMinOrderCount int
	SealAge            time.Duration
	MaxOpenAge         time.Duration

	AutoBatchSchedule     string
	AutoSealSchedule      string
	ConsolidationSchedule string
}

// DefaultConfig returns the policy defaults: 50 kg weight cap, 100 orders per
// batch, 5-order minimum before sealing, 3 h seal age with a 24 h hard cap,
// and sweeps every five minutes (seal and consolidation hourly).
func DefaultConfig() Config {
	return Config{
		HTTPPort:  "8080",
		DBSslMode: "disable",

		BatchMaxWeightKg:   decimal.NewFromInt(50),
		BatchMaxOrderCount: 100,
		BatchMinOrderCount: 5,
		SealAge:            3 * time.Hour,
		MaxOpenAge:         24 * time.Hour,

		AutoBatchSchedule:     "0 */5 * * * *",
		AutoSealSchedule:      "0 0 * * * *",
		ConsolidationSchedule: "0 30 * * * *",
	}
}
