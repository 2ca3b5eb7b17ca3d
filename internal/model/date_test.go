package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2024, 5, 1, 17, 45, 0, 0, time.FixedZone("UTC-5", -5*3600)))

	data, err := json.Marshal(struct {
		EntryDate Date `json:"entry_date"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"entry_date":"2024-05-01"}`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01"`), &back))
	assert.True(t, back.Equal(d.Time))

	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01T00:00:00Z"`), &back))
	assert.Equal(t, "2024-05-01", back.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.True(t, back.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"01/05/2024"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`20240501`), &back))
}

func TestDate_Scan(t *testing.T) {
	testCases := []struct {
		name string
		src  any
	}{
		{"time", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"date string", "2024-05-01"},
		{"timestamp string", "2024-05-01 00:00:00+00:00"},
		{"bytes", []byte("2024-05-01T00:00:00Z")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tc.src))
			assert.Equal(t, "2024-05-01", d.String())
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	v, err := NewDate(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), v)
}
