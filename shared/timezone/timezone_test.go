package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carshare/shared/constant"
	"carshare/shared/timezone"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	require.Error(t, timezone.Init("Mars/Olympus_Mons"))

	require.NoError(t, timezone.Init(""))
	assert.Equal(t, time.UTC.String(), timezone.GetLocation().String())

	require.NoError(t, timezone.Init("Asia/Jakarta"))
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())
}

func TestFormat(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	require.NoError(t, timezone.Init("Asia/Jakarta"))

	// 20:00 UTC is already the next day in UTC+7.
	instant := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "24/03/10", timezone.Format(instant, constant.ShortDateFormat))
	assert.Equal(t, 3, timezone.ToAppTime(instant).Hour())
}

func TestParse(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("UTC") })

	require.NoError(t, timezone.Init("Asia/Jakarta"))

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 17, 0, 0, 0, time.UTC), parsed.UTC())

	_, err = timezone.Parse("2006-01-02", "not a date")
	require.Error(t, err)
}
