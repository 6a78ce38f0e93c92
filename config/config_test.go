package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeport/incentiviz/types"
)

func TestParseFreezeBuckets(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []int64
		wantErr  bool
	}{
		{
			name:     "default buckets",
			raw:      DefaultFreezeBuckets,
			expected: []int64{77824, 155648, 311296, 622592},
		},
		{
			name:     "whitespace tolerated",
			raw:      " 100 , 200 ",
			expected: []int64{100, 200},
		},
		{
			name:     "trailing comma tolerated",
			raw:      "100,200,",
			expected: []int64{100, 200},
		},
		{
			name:    "non-numeric rejected",
			raw:     "100,abc",
			wantErr: true,
		},
		{
			name:    "non-positive rejected",
			raw:     "100,0",
			wantErr: true,
		},
		{
			name:    "duplicate rejected",
			raw:     "100,100",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buckets, err := ParseFreezeBuckets(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.ErrTypeInvalidValue, types.TypeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buckets)
		})
	}
}
