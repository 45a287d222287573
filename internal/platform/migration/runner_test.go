// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/formulary/internal/platform/migration"
)

/*
TestToPgx5DSN rewrites only the postgres URL schemes.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/formulary", "pgx5://u:p@db:5432/formulary"},
		{"postgresql://u:p@db/formulary?sslmode=disable", "pgx5://u:p@db/formulary?sslmode=disable"},
		{"pgx5://u:p@db/formulary", "pgx5://u:p@db/formulary"},
		{"host=db user=u dbname=formulary", "host=db user=u dbname=formulary"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5DSN(tt.in))
		})
	}
}
