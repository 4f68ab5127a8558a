package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("abcdef"), Fold("ABCdef"))
	assert.Equal(t, Fold("straße"), Fold("STRASSE"))
}

func TestOpenRegistersFunctions(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "x.db"), 1)
	require.NoError(t, err)
	defer d.Close()

	var folded string
	require.NoError(t, d.Get(&folded, "SELECT casefold('The FILLMORE')"))
	assert.Equal(t, "the fillmore", folded)

	var fk int
	require.NoError(t, d.Get(&fk, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, fk)
}
