package backend

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalFormats(t *testing.T) {
	tests := []struct {
		name string
		json string
		want time.Time
	}{
		{"rfc3339", `"2026-08-30T12:00:00Z"`, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		{"rfc3339 with offset", `"2026-08-30T14:00:00+02:00"`, time.Date(2026, 8, 30, 14, 0, 0, 0, time.FixedZone("", 2*3600))},
		// Naive datetimes, as FastAPI serializes datetime.utcnow()
		{"naive with micros", `"2026-08-30T12:00:00.123456"`, time.Date(2026, 8, 30, 12, 0, 0, 123456000, time.UTC)},
		{"naive without fraction", `"2026-08-30T12:00:00"`, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		{"empty string", `""`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.json), &ts))
			assert.True(t, ts.Time.Equal(tt.want), "got %v, want %v", ts.Time, tt.want)
		})
	}
}

func TestTimestamp_UnmarshalInvalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := NewTimestamp(time.Date(2026, 8, 30, 12, 0, 0, 123456000, time.UTC))

	data, err := json.Marshal(ts)
	require.NoError(t, err)

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Time.Equal(ts.Time))
}
