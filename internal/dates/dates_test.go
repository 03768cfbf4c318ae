package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-03-15",
			want:  New(2024, time.March, 15),
		},
		{
			name:  "leap day",
			input: "2024-02-29",
			want:  New(2024, time.February, 29),
		},
		{
			name:    "unpadded month rejected",
			input:   "2024-3-15",
			wantErr: true,
		},
		{
			name:    "slash separators rejected",
			input:   "2024/03/15",
			wantErr: true,
		},
		{
			name:    "garbage rejected",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "empty rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "2024-01-05", New(2024, time.January, 5).String())
	assert.Equal(t, "2023-12-31", New(2023, time.December, 31).String())
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		from Date
		n    int
		want Date
	}{
		{"within month", MustParse("2024-01-10"), 5, MustParse("2024-01-15")},
		{"month rollover", MustParse("2024-01-31"), 1, MustParse("2024-02-01")},
		{"year rollover", MustParse("2023-12-31"), 1, MustParse("2024-01-01")},
		{"leap february", MustParse("2024-02-28"), 1, MustParse("2024-02-29")},
		{"non-leap february", MustParse("2023-02-28"), 1, MustParse("2023-03-01")},
		{"backwards", MustParse("2024-03-01"), -1, MustParse("2024-02-29")},
		{"full year back", MustParse("2024-06-15"), -365, MustParse("2023-06-16")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.AddDays(tt.n))
		})
	}
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 0, MustParse("2024-01-01").DaysUntil(MustParse("2024-01-01")))
	assert.Equal(t, 1, MustParse("2024-01-01").DaysUntil(MustParse("2024-01-02")))
	assert.Equal(t, 366, MustParse("2024-01-01").DaysUntil(MustParse("2025-01-01")))
	assert.Equal(t, -31, MustParse("2024-02-01").DaysUntil(MustParse("2024-01-01")))
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name string
		d    Date
		want Date
	}{
		{"mid january", MustParse("2024-01-15"), MustParse("2024-01-31")},
		{"leap february", MustParse("2024-02-01"), MustParse("2024-02-29")},
		{"non-leap february", MustParse("2023-02-10"), MustParse("2023-02-28")},
		{"april", MustParse("2024-04-30"), MustParse("2024-04-30")},
		{"december", MustParse("2024-12-01"), MustParse("2024-12-31")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.EndOfMonth())
		})
	}
}

func TestUnixMilli(t *testing.T) {
	d := MustParse("2024-01-01")

	// 2024-01-01T00:00:00Z
	assert.Equal(t, int64(1704067200000), d.UnixMilli())
	// 2024-01-01T23:59:59.999Z
	assert.Equal(t, int64(1704153599999), d.LastUnixMilli())

	// Last millisecond of one day immediately precedes the first of the next.
	next := d.AddDays(1)
	assert.Equal(t, d.LastUnixMilli()+1, next.UnixMilli())
}

func TestFromUnixMilli(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want Date
	}{
		{"midnight", 1704067200000, MustParse("2024-01-01")},
		{"midday", 1704067200000 + 12*3600*1000, MustParse("2024-01-01")},
		{"last millisecond", 1704153599999, MustParse("2024-01-01")},
		{"first of next day", 1704153600000, MustParse("2024-01-02")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromUnixMilli(tt.ms))
		})
	}
}

func TestComparisons(t *testing.T) {
	a := MustParse("2024-01-01")
	b := MustParse("2024-01-02")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.True(t, a == MustParse("2024-01-01"))
	assert.False(t, a.IsZero())
	assert.True(t, Date{}.IsZero())

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, b.Compare(a))
}

func TestTextRoundTrip(t *testing.T) {
	d := MustParse("2024-07-04")

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04", string(text))

	var back Date
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, d, back)

	assert.Error(t, back.UnmarshalText([]byte("07/04/2024")))
}

func TestRange(t *testing.T) {
	r := Range{Start: MustParse("2024-01-01"), End: MustParse("2024-01-07")}

	assert.Equal(t, 7, r.Days())
	assert.Equal(t, "2024-01-01 to 2024-01-07", r.String())

	assert.True(t, r.Contains(MustParse("2024-01-01")))
	assert.True(t, r.Contains(MustParse("2024-01-04")))
	assert.True(t, r.Contains(MustParse("2024-01-07")))
	assert.False(t, r.Contains(MustParse("2023-12-31")))
	assert.False(t, r.Contains(MustParse("2024-01-08")))

	single := Range{Start: MustParse("2024-05-01"), End: MustParse("2024-05-01")}
	assert.Equal(t, 1, single.Days())
}
