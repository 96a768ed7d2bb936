package daterange_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carshare/shared/daterange"
	"carshare/shared/failure"
)

var base = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{name: "ordered", start: base, end: base.Add(daterange.Day)},
		{name: "empty range", start: base, end: base},
		{name: "reversed", start: base.Add(daterange.Day), end: base, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := daterange.New(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := daterange.DateRange{Start: base, End: base.Add(2 * daterange.Day)}

	assert.True(t, r.Contains(base), "start is inclusive")
	assert.True(t, r.Contains(base.Add(daterange.Day)))
	assert.True(t, r.Contains(base.Add(2*daterange.Day)), "end is inclusive")
	assert.False(t, r.Contains(base.Add(-time.Millisecond)))
	assert.False(t, r.Contains(base.Add(2*daterange.Day+time.Millisecond)))
}

func TestDateRange_Overlaps(t *testing.T) {
	r := daterange.DateRange{Start: base, End: base.Add(2 * daterange.Day)}

	assert.True(t, r.Overlaps(daterange.DateRange{Start: base.Add(daterange.Day), End: base.Add(5 * daterange.Day)}))
	assert.True(t, r.Overlaps(daterange.DateRange{Start: base.Add(2 * daterange.Day), End: base.Add(3 * daterange.Day)}))
	assert.False(t, r.Overlaps(daterange.DateRange{Start: base.Add(3 * daterange.Day), End: base.Add(4 * daterange.Day)}))
}

func TestDateRange_WidenToEndOfDay(t *testing.T) {
	r := daterange.DateRange{Start: base, End: base.Add(2 * daterange.Day)}

	widened := r.WidenToEndOfDay()

	assert.Equal(t, r.Start, widened.Start)
	assert.Equal(t, base.Add(3*daterange.Day-time.Millisecond), widened.End)
	assert.Equal(t, int64(86399999), daterange.EndOfDay.Milliseconds())
}
