package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenres(t *testing.T) {
	g := NewGenres([]string{"Jazz", " ", "Rock", "Jazz", " Folk "})
	assert.Equal(t, Genres{"Jazz", "Rock", "Folk"}, g)
	assert.Equal(t, Genres{}, NewGenres(nil))
}

func TestGenresScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want Genres
	}{
		{"nil", nil, Genres{}},
		{"empty string", "", Genres{}},
		{"string", `["Jazz","Blues"]`, Genres{"Jazz", "Blues"}},
		{"bytes", []byte(`["Folk"]`), Genres{"Folk"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g Genres
			require.NoError(t, g.Scan(tt.src))
			assert.Equal(t, tt.want, g)
		})
	}

	var g Genres
	assert.Error(t, g.Scan(42))
	assert.Error(t, g.Scan("not json"))
}

func TestGenresValueOfNil(t *testing.T) {
	var g Genres
	v, err := g.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestShowIsUpcoming(t *testing.T) {
	now := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	s := Show{StartTime: now.Add(time.Second)}
	assert.True(t, s.IsUpcoming(now))
	assert.False(t, s.IsUpcoming(now.Add(time.Second)))
	assert.False(t, s.IsUpcoming(now.Add(2*time.Second)))
}

func TestConfigHelpers(t *testing.T) {
	c := AppConfig{DataDir: "/var/lib/fyyur", Database: "x.db", TimeZone: "No/Such_Zone", RequestTimeout: "bogus"}
	assert.Equal(t, "/var/lib/fyyur/x.db", c.DatabasePath())
	assert.Equal(t, time.UTC, c.Location())
	assert.Equal(t, time.Duration(0), c.Timeout())

	c.TimeZone = "UTC"
	c.RequestTimeout = "3s"
	assert.Equal(t, "UTC", c.Location().String())
	assert.Equal(t, 3*time.Second, c.Timeout())
}
