package database

import "testing"

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name string
		file string
		want int
	}{
		{"initial schema", "001_initial_schema.sql", 1},
		{"double digit", "012_add_indexes.sql", 12},
		{"not sql", "001_notes.txt", 0},
		{"no version prefix", "schema.sql", 0},
		{"non-numeric prefix", "abc_schema.sql", 0},
		{"zero version", "000_empty.sql", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := migrationVersion(tc.file); got != tc.want {
				t.Errorf("migrationVersion(%q) = %d, want %d", tc.file, got, tc.want)
			}
		})
	}
}
