package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestampSpaceSeparated(t *testing.T) {
	want := time.Date(2026, 2, 13, 18, 28, 11, 0, time.Local).UnixMilli()
	assert.Equal(t, want, NormalizeTimestamp("2026-02-13 18:28:11"))
}

func TestNormalizeTimestampISO(t *testing.T) {
	want := time.Date(2026, 2, 13, 18, 28, 11, 0, time.Local).UnixMilli()
	assert.Equal(t, want, NormalizeTimestamp("2026-02-13T18:28:11"))
}

func TestNormalizeTimestampWithZone(t *testing.T) {
	want := time.Date(2026, 2, 13, 18, 28, 11, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, NormalizeTimestamp("2026-02-13T18:28:11Z"))
}

func TestNormalizeTimestampDateOnly(t *testing.T) {
	want := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, want, NormalizeTimestamp("2026-02-13"))
}

func TestNormalizeTimestampTrimsWhitespace(t *testing.T) {
	want := time.Date(2026, 2, 13, 18, 28, 11, 0, time.Local).UnixMilli()
	assert.Equal(t, want, NormalizeTimestamp("  2026-02-13 18:28:11  "))
}

func TestNormalizeTimestampSentinel(t *testing.T) {
	assert.Equal(t, int64(0), NormalizeTimestamp(""))
	assert.Equal(t, int64(0), NormalizeTimestamp("   "))
	assert.Equal(t, int64(0), NormalizeTimestamp("not a date"))
	assert.Equal(t, int64(0), NormalizeTimestamp("13/02/2026 18:28:11"))
}

func TestNormalizeTimestampPre1970(t *testing.T) {
	ms := NormalizeTimestamp("1969-07-20 20:17:00")
	assert.Negative(t, ms, "pre-1970 instants are legal, only parse failures map to 0")
}

func TestFormatDateMDY(t *testing.T) {
	ms := time.Date(2026, 2, 3, 18, 28, 11, 0, time.Local).UnixMilli()
	assert.Equal(t, "02/03/2026", FormatDateMDY(ms))
	assert.Equal(t, "", FormatDateMDY(0))
}

func TestFormatTimeAMPM(t *testing.T) {
	cases := []struct {
		hour, minute int
		want         string
	}{
		{0, 5, "12:05 AM"},
		{11, 59, "11:59 AM"},
		{12, 0, "12:00 PM"},
		{18, 28, "6:28 PM"},
		{23, 1, "11:01 PM"},
	}
	for _, tc := range cases {
		ms := time.Date(2026, 2, 13, tc.hour, tc.minute, 0, 0, time.Local).UnixMilli()
		assert.Equal(t, tc.want, FormatTimeAMPM(ms))
	}

	assert.Equal(t, "", FormatTimeAMPM(0))
}
