// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
)

func testContext() context.Context {
	return context.Background()
}

// requireDatabase skips integration tests when no database is configured and
// empties the checkups table otherwise.
func requireDatabase(t *testing.T) {
	t.Helper()

	if pool == nil {
		t.Skip("DATABASE_URL not set")
	}

	if _, err := pool.Exec(testContext(), `TRUNCATE checkups RESTART IDENTITY`); err != nil {
		t.Fatalf("failed to truncate checkups: %v", err)
	}
}
