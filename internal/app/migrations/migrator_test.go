package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"001_init.sql", "001"},
		{"002_add_plan_entries.sql", "002"},
		{"010_requirement_documents_payload.sql", "010"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, migrationVersion(tt.filename))
		})
	}
}
