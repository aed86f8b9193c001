package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthSetContains(t *testing.T) {
	set := MonthSet{time.June, time.July}

	assert.True(t, set.Contains(time.June))
	assert.False(t, set.Contains(time.August))
	assert.False(t, MonthSet{}.Contains(time.June))
}

func TestParseMonthSet(t *testing.T) {
	cases := []struct {
		in   string
		want MonthSet
	}{
		{"", nil},
		{"June", MonthSet{time.June}},
		{"June, July, September", MonthSet{time.June, time.July, time.September}},
		{"June-September", MonthSet{time.June, time.July, time.August, time.September}},
		// Inclusive range wrapping the year end
		{"November-February", MonthSet{time.November, time.December, time.January, time.February}},
		// Short names and mixed case
		{"jun, OCT", MonthSet{time.June, time.October}},
		// Duplicates collapse
		{"June, June-July", MonthSet{time.June, time.July}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMonthSet(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseMonthSetRejectsUnknownMonth(t *testing.T) {
	_, err := ParseMonthSet("Juneuary")
	assert.Error(t, err)

	_, err = ParseMonthSet("June-Smarch")
	assert.Error(t, err)
}

func TestMonthSetValueScanRoundTrip(t *testing.T) {
	set := MonthSet{time.November, time.December, time.January}

	v, err := set.Value()
	require.NoError(t, err)
	assert.Equal(t, "[11,12,1]", v)

	var scanned MonthSet
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, set, scanned)

	require.NoError(t, scanned.Scan([]byte("[6]")))
	assert.Equal(t, MonthSet{time.June}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)

	empty := MonthSet{}
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestCropAgeDays(t *testing.T) {
	today := time.Date(2025, time.June, 15, 14, 30, 0, 0, time.Local)

	sown := time.Date(2025, time.June, 5, 23, 0, 0, 0, time.Local)
	crop := &Crop{SownDate: &sown}
	assert.Equal(t, 10, crop.AgeDays(today))

	assert.Zero(t, (&Crop{}).AgeDays(today))
}

func TestCropDisplayName(t *testing.T) {
	assert.Equal(t, "Rice", (&Crop{Name: "നെല്ല്", EnglishName: "Rice"}).DisplayName())
	assert.Equal(t, "നെല്ല്", (&Crop{Name: "നെല്ല്"}).DisplayName())
}
