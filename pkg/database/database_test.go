package database

import (
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/syncura360/api/internal/domain/visit"
)

// The partial index DDL is raw SQL, so nothing ties its column names to the
// gorm tags at compile time. This pins them together.
func TestPartialIndexColumnsMatchModels(t *testing.T) {
	models := map[string]interface{}{
		"clinical.visits":           &visit.Visit{},
		"clinical.room_assignments": &visit.RoomAssignment{},
	}

	columnsOf := func(t *testing.T, model interface{}) map[string]bool {
		t.Helper()
		s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		cols := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			cols[f.DBName] = true
		}
		return cols
	}

	indexCols := regexp.MustCompile(`ON\s+(\S+)\s*\(([^)]+)\)`)
	whereCol := regexp.MustCompile(`WHERE\s+(\w+)`)

	for _, stmt := range partialIndexes {
		m := indexCols.FindStringSubmatch(stmt)
		require.NotNilf(t, m, "no ON clause in %q", stmt)
		table := m[1]

		model, ok := models[table]
		require.Truef(t, ok, "index on unknown table %s", table)
		cols := columnsOf(t, model)

		for _, col := range strings.Split(m[2], ",") {
			col = strings.TrimSpace(col)
			assert.Truef(t, cols[col], "index column %s not in %s model", col, table)
		}

		if w := whereCol.FindStringSubmatch(stmt); w != nil {
			assert.Truef(t, cols[w[1]], "predicate column %s not in %s model", w[1], table)
		}
	}
}
