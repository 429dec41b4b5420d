package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 9*60 + 30, false},
		{"23:59", 23*60 + 59, false},
		{"14:00:00", 14 * 60, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"-1:30", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		if tc.wantErr {
			require.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestTimeOfDayString(t *testing.T) {
	require.Equal(t, "09:30", TimeOfDay(9*60+30).String())
	require.Equal(t, "00:00", TimeOfDay(0).String())
	require.Equal(t, "23:00", TimeOfDay(23*60).String())
}

func TestTimeOfDayAligned(t *testing.T) {
	require.True(t, TimeOfDay(9*60).Aligned())
	require.True(t, TimeOfDay(9*60+30).Aligned())
	require.False(t, TimeOfDay(9*60+15).Aligned())
	require.False(t, TimeOfDay(9*60+29).Aligned())
}

func TestTimeOfDayValid(t *testing.T) {
	require.True(t, TimeOfDay(0).Valid())
	require.True(t, TimeOfDay(MinutesPerDay-1).Valid())
	require.False(t, TimeOfDay(MinutesPerDay).Valid())
	require.False(t, TimeOfDay(-1).Valid())
}

func TestTimeOfDayJSONRoundTrip(t *testing.T) {
	original := TimeOfDay(16 * 60)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	require.Equal(t, `"16:00"`, string(data))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, original, decoded)
}

func TestTimeOfDayScan(t *testing.T) {
	var fromString TimeOfDay
	require.NoError(t, fromString.Scan("08:30:00"))
	require.Equal(t, TimeOfDay(8*60+30), fromString)

	var fromBytes TimeOfDay
	require.NoError(t, fromBytes.Scan([]byte("17:00")))
	require.Equal(t, TimeOfDay(17*60), fromBytes)

	var bad TimeOfDay
	require.Error(t, bad.Scan(42))
}

func TestTimeOfDayValue(t *testing.T) {
	v, err := TimeOfDay(10*60 + 30).Value()
	require.NoError(t, err)
	require.Equal(t, "10:30:00", v)
}
