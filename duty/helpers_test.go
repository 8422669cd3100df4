package duty

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func clock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

// act builds a normalized activity for tests.
func act(t *testing.T, date, start, end string, kind Kind, prePost float64) Activity {
	t.Helper()
	a := Activity{
		Date:         day(t, date),
		Start:        clock(t, start),
		End:          clock(t, end),
		Kind:         kind,
		PrePostHours: prePost,
	}
	a.normalize()
	require.NoError(t, a.Check())
	return a
}
