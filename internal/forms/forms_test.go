package forms

import (
	"net/url"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venueValues() url.Values {
	return url.Values{
		"name":           {" Blue Note "},
		"city":           {"New York"},
		"state":          {"ny"},
		"address":        {"1 St"},
		"phone":          {"555-0100"},
		"genres":         {"Jazz", "Blues", " "},
		"website_link":   {"https://bluenote.example.com"},
		"seeking_talent": {"y"},
	}
}

func TestDecodeVenue(t *testing.T) {
	f := DecodeVenue(venueValues())
	require.NoError(t, f.Validate())
	assert.Equal(t, "Blue Note", f.Name)
	assert.Equal(t, "NY", f.State)
	assert.Equal(t, []string{"Jazz", "Blues"}, f.Genres)
	assert.True(t, f.SeekingTalent)

	v := f.ToModel(7)
	assert.EqualValues(t, 7, v.ID)
	assert.Equal(t, "https://bluenote.example.com", v.WebsiteLink)
	assert.Equal(t, f, VenueFormFrom(v))
}

func TestVenueValidation(t *testing.T) {
	for name, change := range map[string]func(url.Values){
		"missing name":  func(v url.Values) { v.Del("name") },
		"blank address": func(v url.Values) { v.Set("address", "   ") },
		"missing phone": func(v url.Values) { v.Del("phone") },
		"unknown state": func(v url.Values) { v.Set("state", "XX") },
		"broken link":   func(v url.Values) { v.Set("facebook_link", "not a link") },
		"missing city":  func(v url.Values) { v.Del("city") },
	} {
		t.Run(name, func(t *testing.T) {
			values := venueValues()
			change(values)
			f := DecodeVenue(values)
			err := f.Validate()
			require.Error(t, err)
			assert.IsType(t, validator.ValidationErrors{}, err)
		})
	}
}

func TestCheckbox(t *testing.T) {
	for _, val := range []string{"y", "on", "true", "1", "ON"} {
		assert.True(t, checkbox(url.Values{"c": {val}}, "c"), val)
	}
	for _, val := range []string{"", "n", "off", "false", "0"} {
		assert.False(t, checkbox(url.Values{"c": {val}}, "c"), val)
	}
	assert.False(t, checkbox(url.Values{}, "c"))
}

func TestDecodeArtist(t *testing.T) {
	f := DecodeArtist(url.Values{
		"name":          {"Guns N Petals"},
		"phone":         {"326-123-5000"},
		"seeking_venue": {"on"},
	})
	require.NoError(t, f.Validate(), "City and state are optional for artists")
	a := f.ToModel(0)
	assert.True(t, a.SeekingVenue)
	assert.Empty(t, a.Genres)

	f.Phone = ""
	assert.Error(t, f.Validate())
}

func TestDecodeShow(t *testing.T) {
	f := DecodeShow(url.Values{
		"artist_id":  {"1"},
		"venue_id":   {"2"},
		"start_time": {"2099-01-01 20:00:00"},
	})
	require.NoError(t, f.Validate())
	s, err := f.ToModel()
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.ArtistID)
	assert.EqualValues(t, 2, s.VenueID)
	assert.Equal(t, time.Date(2099, time.January, 1, 20, 0, 0, 0, time.Local), s.StartTime)

	for name, values := range map[string]url.Values{
		"bad artist": {"artist_id": {"abc"}, "venue_id": {"2"}, "start_time": {"2099-01-01 20:00:00"}},
		"zero venue": {"artist_id": {"1"}, "venue_id": {"0"}, "start_time": {"2099-01-01 20:00:00"}},
		"bad time":   {"artist_id": {"1"}, "venue_id": {"2"}, "start_time": {"tomorrow"}},
		"no time":    {"artist_id": {"1"}, "venue_id": {"2"}},
	} {
		f := DecodeShow(values)
		assert.Error(t, f.Validate(), name)
	}
}

func TestStates(t *testing.T) {
	states := States()
	assert.Len(t, states, 51)
	assert.Contains(t, states, "NY")
}
