package migrate

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derWhity/fyyur/internal/db"
)

func TestMigrationsAreIdempotent(t *testing.T) {
	l, _ := test.NewNullLogger()
	logger := logrus.NewEntry(l)
	d, err := db.Open(filepath.Join(t.TempDir(), "m.db"), 1)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, ExecuteMigrationsOnDb(d, logger))
	require.NoError(t, ExecuteMigrationsOnDb(d, logger))

	var num int
	require.NoError(t, d.Get(&num, `SELECT COUNT(*) FROM Migrations WHERE success = 1`))
	assert.Equal(t, len(migrations), num)

	for _, table := range []string{"Venues", "Artists", "Shows"} {
		var cnt int
		require.NoError(t, d.Get(&cnt, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table))
		assert.Equal(t, 1, cnt, table)
	}
}
