package postgres_test

import "time"

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

var applicationCols = []string{"id", "candidate_id", "cycle_id", "subteam_id", "status", "completion_percent", "last_saved_at", "submitted_at", "created_on", "updated_on"}
