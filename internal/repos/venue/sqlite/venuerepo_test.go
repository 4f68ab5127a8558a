package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/db/dbtest"
	"github.com/derWhity/fyyur/internal/models"
	"github.com/derWhity/fyyur/internal/repos"
	artistrepo "github.com/derWhity/fyyur/internal/repos/artist/sqlite"
	showrepo "github.com/derWhity/fyyur/internal/repos/show/sqlite"
)

var now = time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t), dbtest.Logger())
	v := models.Venue{
		Name:               "The Fillmore",
		City:               "San Francisco",
		State:              "CA",
		Address:            "1805 Geary Blvd",
		Genres:             models.Genres{"Rock", "Jazz"},
		SeekingTalent:      true,
		SeekingDescription: "Looking for local bands",
	}
	require.NoError(t, r.Create(ctx, &v))
	require.NotZero(t, v.ID)

	got, err := r.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Fillmore", got.Name)
	assert.Equal(t, "1805 Geary Blvd", got.Address)
	assert.Equal(t, models.Genres{"Rock", "Jazz"}, got.Genres)
	assert.True(t, got.SeekingTalent)
	assert.Equal(t, "Looking for local bands", got.SeekingDescription)

	_, err = r.GetByID(ctx, v.ID+100)
	assert.Equal(t, repos.ErrEntityNotExisting, err)
}

func TestUpdateOverwritesEverything(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t), dbtest.Logger())
	v := models.Venue{Name: "A", City: "B", State: "C", Phone: "123", Genres: models.Genres{"Folk"}, SeekingTalent: true}
	require.NoError(t, r.Create(ctx, &v))

	upd := models.Venue{ID: v.ID, Name: "A2", City: "B2", State: "C2"}
	require.NoError(t, r.Update(ctx, &upd))

	got, err := r.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Name)
	assert.Equal(t, "", got.Phone)
	assert.Equal(t, models.Genres{}, got.Genres)
	assert.False(t, got.SeekingTalent)

	upd.ID = 999
	assert.Equal(t, repos.ErrEntityNotExisting, r.Update(ctx, &upd))
}

func TestDeleteCascadesToShows(t *testing.T) {
	ctx := context.Background()
	d := dbtest.New(t)
	r := New(d, dbtest.Logger())
	ar := artistrepo.New(d, dbtest.Logger())
	sr := showrepo.New(d, dbtest.Logger())

	v := models.Venue{Name: "V", City: "X", State: "Y"}
	require.NoError(t, r.Create(ctx, &v))
	a := models.Artist{Name: "A", City: "X", State: "Y"}
	require.NoError(t, ar.Create(ctx, &a))
	require.NoError(t, sr.Create(ctx, &models.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: now}))

	require.NoError(t, r.Delete(ctx, v.ID))
	_, err := r.GetByID(ctx, v.ID)
	assert.Equal(t, repos.ErrEntityNotExisting, err)

	shows, err := sr.ByArtist(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, shows)

	assert.Equal(t, repos.ErrEntityNotExisting, r.Delete(ctx, v.ID))
}

func TestListCountsUpcomingShows(t *testing.T) {
	ctx := context.Background()
	d := dbtest.New(t)
	r := New(d, dbtest.Logger())
	ar := artistrepo.New(d, dbtest.Logger())
	sr := showrepo.New(d, dbtest.Logger())

	sf := models.Venue{Name: "The Fillmore", City: "San Francisco", State: "CA"}
	ny := models.Venue{Name: "The Dueling Pianos Bar", City: "New York", State: "NY"}
	sf2 := models.Venue{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"}
	for _, v := range []*models.Venue{&sf, &ny, &sf2} {
		require.NoError(t, r.Create(ctx, v))
	}
	a := models.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA"}
	require.NoError(t, ar.Create(ctx, &a))
	for _, st := range []time.Time{now.Add(-time.Hour), now.Add(time.Second), now.Add(24 * time.Hour)} {
		require.NoError(t, sr.Create(ctx, &models.Show{VenueID: sf.ID, ArtistID: a.ID, StartTime: st}))
	}

	lst, err := r.List(ctx, now)
	require.NoError(t, err)
	require.Len(t, lst, 3)
	assert.Equal(t, ny.ID, lst[0].ID)
	assert.Equal(t, sf2.ID, lst[1].ID)
	assert.Equal(t, sf.ID, lst[2].ID)
	assert.Equal(t, uint(2), lst[2].NumUpcomingShows)

	// The show starting one second after "now" is past once that second has elapsed
	lst, err = r.List(ctx, now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, uint(1), lst[2].NumUpcomingShows)
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	r := New(dbtest.New(t), dbtest.Logger())
	for _, name := range []string{"ABCdef", "Zebra Lounge", "Cafe Straße"} {
		require.NoError(t, r.Create(ctx, &models.Venue{Name: name, City: "C", State: "S"}))
	}

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"ABCdef", "Cafe Straße", "Zebra Lounge"}},
		{"abc", []string{"ABCdef"}},
		{"LOUNGE", []string{"Zebra Lounge"}},
		{"strasse", []string{"Cafe Straße"}},
		{"%", []string{}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			lst, err := r.Find(ctx, tt.search, now)
			require.NoError(t, err)
			names := []string{}
			for _, v := range lst {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
