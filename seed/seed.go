// Package seed provides the built-in demo dataset used in mock mode.
// Every function returns a fresh slice so callers can mutate their copy
// without bleeding into later calls.
package seed

import "time"

var base = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func at(days int) time.Time { return base.AddDate(0, 0, days) }
