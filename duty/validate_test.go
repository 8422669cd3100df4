package duty

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndAttachEndBoundaries(t *testing.T) {
	existing := []Activity{act(t, "2025-03-10", "09:00", "10:00", KindFlight, 0)}

	tests := []struct {
		name    string
		c       Candidate
		wantEnd string
		wantErr error
	}{
		{
			name:    "touching after is accepted",
			c:       Candidate{Date: "2025-03-10", Start: "10:00", Duration: "1", Kind: "Flight"},
			wantEnd: "11:00",
		},
		{
			name:    "touching before is accepted",
			c:       Candidate{Date: "2025-03-10", Start: "08:00", Duration: "1.0", Kind: "Ground"},
			wantEnd: "09:00",
		},
		{
			name:    "partial overlap is rejected",
			c:       Candidate{Date: "2025-03-10", Start: "09:30", Duration: "1", Kind: "Flight"},
			wantErr: ErrTimeConflict,
		},
		{
			name:    "enclosing interval is rejected",
			c:       Candidate{Date: "2025-03-10", Start: "08:00", Duration: "3", Kind: "Other"},
			wantErr: ErrTimeConflict,
		},
		{
			name:    "same time on another date is accepted",
			c:       Candidate{Date: "2025-03-11", Start: "09:30", Duration: "1", Kind: "Flight"},
			wantEnd: "10:30",
		},
		{
			name:    "past midnight is rejected",
			c:       Candidate{Date: "2025-03-10", Start: "23:00", Duration: "2.0", Kind: "Flight"},
			wantErr: ErrMidnightCrossing,
		},
		{
			name:    "ending exactly at midnight is rejected",
			c:       Candidate{Date: "2025-03-12", Start: "23:00", Duration: "1", Kind: "Flight"},
			wantErr: ErrMidnightCrossing,
		},
		{
			name:    "ending one minute before midnight is accepted",
			c:       Candidate{Date: "2025-03-12", Start: "22:59", Duration: "1", Kind: "Flight"},
			wantEnd: "23:59",
		},
		{
			name:    "fractional duration truncates to the minute",
			c:       Candidate{Date: "2025-03-12", Start: "09:00", Duration: "1.01", Kind: "Flight"},
			wantEnd: "10:00",
		},
		{
			name:    "decimal duration is exact",
			c:       Candidate{Date: "2025-03-12", Start: "09:00", Duration: "2.3", Kind: "SIM/ATD"},
			wantEnd: "11:18",
		},
		{
			name:    "sub-minute duration is rejected",
			c:       Candidate{Date: "2025-03-12", Start: "09:00", Duration: "0.01", Kind: "Flight"},
			wantErr: ErrInvalidTimeOrder,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAndAttachEnd(tt.c, existing)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var rej *RejectionError
				require.True(t, errors.As(err, &rej))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, got.End.String())
			assert.Equal(t, got.Hours(), got.DurationHours)
			require.NoError(t, got.Check())
		})
	}
}

func TestValidateAndAttachEndConflictNamesExisting(t *testing.T) {
	existing := []Activity{act(t, "2025-03-10", "09:00", "10:00", KindGround, 0)}
	existing[0].ID = "ground-1"

	_, err := ValidateAndAttachEnd(Candidate{Date: "2025-03-10", Start: "09:30", Duration: "1", Kind: "Flight"}, existing)

	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	require.NotNil(t, rej.Conflict)
	assert.Equal(t, "ground-1", rej.Conflict.ID)
	assert.Contains(t, err.Error(), "Ground 09:00-10:00")
}

func TestValidateAndAttachEndMissingFields(t *testing.T) {
	valid := Candidate{Date: "2025-03-10", Start: "09:00", Duration: "1", Kind: "Flight"}

	tests := []struct {
		name   string
		mutate func(*Candidate)
		field  string
	}{
		{"no date", func(c *Candidate) { c.Date = "" }, "date"},
		{"bad date", func(c *Candidate) { c.Date = "2025-02-30" }, "date"},
		{"no start", func(c *Candidate) { c.Start = "" }, "start"},
		{"bad start", func(c *Candidate) { c.Start = "9am" }, "start"},
		{"no duration", func(c *Candidate) { c.Duration = "" }, "duration"},
		{"zero duration", func(c *Candidate) { c.Duration = "0" }, "duration"},
		{"negative duration", func(c *Candidate) { c.Duration = "-1" }, "duration"},
		{"text duration", func(c *Candidate) { c.Duration = "two" }, "duration"},
		{"no kind", func(c *Candidate) { c.Kind = "" }, "kind"},
		{"unknown kind", func(c *Candidate) { c.Kind = "Helicopter" }, "kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			_, err := ValidateAndAttachEnd(c, nil)
			require.ErrorIs(t, err, ErrMissingField)
			var rej *RejectionError
			require.True(t, errors.As(err, &rej))
			assert.Equal(t, tt.field, rej.Field)
		})
	}
}

func TestValidateAndAttachEndPrePost(t *testing.T) {
	tests := []struct {
		kind    string
		prePost string
		want    float64
	}{
		{"Flight", "1.5", 1.5},
		{"SIM/ATD", "0,5", 0.5},
		{"Flight", "", 0},
		{"Flight", "-2", 0},
		{"Flight", "abc", 0},
		{"Ground", "1.5", 0},
		{"Other", "3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.prePost, func(t *testing.T) {
			got, err := ValidateAndAttachEnd(Candidate{
				Date: "2025-03-10", Start: "09:00", Duration: "1", Kind: tt.kind, PrePost: tt.prePost,
			}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.PrePostHours)
		})
	}
}

func TestAddSortsNewestFirst(t *testing.T) {
	var log []Activity
	inputs := []Candidate{
		{Date: "2025-03-09", Start: "08:00", Duration: "1", Kind: "Flight"},
		{Date: "2025-03-10", Start: "07:00", Duration: "1", Kind: "Ground"},
		{Date: "2025-03-10", Start: "13:00", Duration: "2", Kind: "SIM/ATD"},
		{Date: "2025-02-28", Start: "10:00", Duration: "1", Kind: "Other"},
	}
	for i, c := range inputs {
		before := len(log)
		next, a, err := Add(log, c, fmt.Sprintf("id-%d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("id-%d", i), a.ID)
		assert.Len(t, log, before, "input snapshot must not grow")
		log = next
	}

	var got []string
	for _, a := range log {
		got = append(got, a.Date.String()+" "+a.Start.String())
	}
	assert.Equal(t, []string{
		"2025-03-10 13:00",
		"2025-03-10 07:00",
		"2025-03-09 08:00",
		"2025-02-28 10:00",
	}, got)
}

func TestAddRejectionLeavesCollectionUnchanged(t *testing.T) {
	log, _, err := Add(nil, Candidate{Date: "2025-03-10", Start: "09:00", Duration: "1", Kind: "Flight"}, "a")
	require.NoError(t, err)

	next, _, err := Add(log, Candidate{Date: "2025-03-10", Start: "09:15", Duration: "1", Kind: "Flight"}, "b")
	require.ErrorIs(t, err, ErrTimeConflict)
	assert.Nil(t, next)
	assert.Len(t, log, 1)
}

func TestAcceptedMutationsPreserveInvariants(t *testing.T) {
	var log []Activity
	kinds := []string{"Flight", "SIM/ATD", "Ground", "Other"}
	n := 0
	for d := 1; d <= 5; d++ {
		for start := 0; start < 24*60; start += 37 {
			c := Candidate{
				Date:     fmt.Sprintf("2025-01-%02d", d),
				Start:    NewClock(start/60, start%60).String(),
				Duration: fmt.Sprintf("%.2f", float64(start%5+1)*0.45),
				Kind:     kinds[start%4],
				PrePost:  "0.5",
			}
			next, _, err := Add(log, c, fmt.Sprintf("id-%d", n))
			n++
			if err != nil {
				require.True(t,
					errors.Is(err, ErrTimeConflict) || errors.Is(err, ErrMidnightCrossing),
					"unexpected rejection %v", err)
				continue
			}
			log = next
			require.NoError(t, CheckCollection(log))
		}
	}
	assert.NotEmpty(t, log)
}

func TestEdit(t *testing.T) {
	base := []Activity{
		act(t, "2025-03-10", "13:00", "15:00", KindFlight, 1),
		act(t, "2025-03-10", "09:00", "10:00", KindFlight, 0.5),
	}

	t.Run("start accepts unpadded hour", func(t *testing.T) {
		next, err := Edit(base, 1, FieldStart, "8:30")
		require.NoError(t, err)
		assert.Equal(t, "08:30", next[1].Start.String())
		assert.Equal(t, 1.5, next[1].DurationHours)
		assert.Equal(t, "09:00", base[1].Start.String(), "input must not change")
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := Edit(base, 1, FieldEnd, "08:00")
		require.ErrorIs(t, err, ErrInvalidTimeOrder)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := Edit(base, 1, FieldStart, "10:30")
		require.ErrorIs(t, err, ErrInvalidTimeOrder)
	})

	t.Run("end into next activity", func(t *testing.T) {
		_, err := Edit(base, 1, FieldEnd, "13:30")
		require.ErrorIs(t, err, ErrTimeConflict)
	})

	t.Run("end touching next activity", func(t *testing.T) {
		next, err := Edit(base, 1, FieldEnd, "13:00")
		require.NoError(t, err)
		require.NoError(t, CheckCollection(next))
	})

	t.Run("end past midnight", func(t *testing.T) {
		_, err := Edit(base, 0, FieldEnd, "24:30")
		require.ErrorIs(t, err, ErrMidnightCrossing)
	})

	t.Run("garbage time", func(t *testing.T) {
		_, err := Edit(base, 0, FieldEnd, "noon")
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("kind change clears pre post", func(t *testing.T) {
		next, err := Edit(base, 0, FieldKind, "Ground")
		require.NoError(t, err)
		assert.Equal(t, KindGround, next[0].Kind)
		assert.Zero(t, next[0].PrePostHours)
		require.NoError(t, next[0].Check())
	})

	t.Run("negative pre post becomes zero", func(t *testing.T) {
		next, err := Edit(base, 0, FieldPrePost, "-1")
		require.NoError(t, err)
		assert.Zero(t, next[0].PrePostHours)
	})

	t.Run("pre post on ground stays zero", func(t *testing.T) {
		ground := []Activity{act(t, "2025-03-10", "09:00", "10:00", KindGround, 0)}
		next, err := Edit(ground, 0, FieldPrePost, "2")
		require.NoError(t, err)
		assert.Zero(t, next[0].PrePostHours)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := Edit(base, 2, FieldStart, "08:00")
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestDelete(t *testing.T) {
	base := []Activity{
		act(t, "2025-03-10", "13:00", "15:00", KindFlight, 0),
		act(t, "2025-03-10", "09:00", "10:00", KindGround, 0),
		act(t, "2025-03-09", "09:00", "10:00", KindOther, 0),
	}

	next, err := Delete(base, 1)
	require.NoError(t, err)
	require.Len(t, next, 2)
	assert.Equal(t, KindFlight, next[0].Kind)
	assert.Equal(t, KindOther, next[1].Kind)
	assert.Len(t, base, 3)

	_, err = Delete(base, -1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = Delete(base, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
