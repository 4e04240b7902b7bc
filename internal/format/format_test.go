package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime(t *testing.T) {
	ts := time.Date(2019, time.May, 21, 21, 30, 0, 0, time.Local)
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", DateTime(ts, StyleFull))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", DateTime(ts, StyleMedium))
	assert.Equal(t, DateTime(ts, StyleMedium), DateTime(ts, "fancy"), "Unknown styles should render as medium")
	assert.Equal(t, DateTime(ts, StyleFull), DateTime(ts, StyleFull))
}

func TestDateTimeString(t *testing.T) {
	str, err := DateTimeString("2035-04-01 20:00:00", StyleFull)
	require.NoError(t, err)
	assert.Equal(t, "Sunday April, 1, 2035 at 8:00PM", str)

	_, err = DateTimeString("next tuesday", StyleFull)
	assert.Error(t, err)
}
