package internal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePageEndpoints(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		description string
		raw         string
		want        map[int64]string
		wantErr     bool
	}{
		{
			"Should parse a single entry",
			"511=https://hooks.example.com/delta",
			map[int64]string{511: "https://hooks.example.com/delta"},
			false,
		},
		{
			"Should parse multiple entries and trim spaces",
			"511=https://a.example.com; 512=https://b.example.com",
			map[int64]string{511: "https://a.example.com", 512: "https://b.example.com"},
			false,
		},
		{
			"Should ignore empty segments",
			"511=https://a.example.com;;",
			map[int64]string{511: "https://a.example.com"},
			false,
		},
		{
			"Should reject an entry without a url",
			"511=",
			nil,
			true,
		},
		{
			"Should reject a non-numeric page id",
			"delta=https://a.example.com",
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, err := ParsePageEndpoints(tt.raw)
			if tt.wantErr {
				req.Error(err, tt.description)
				return
			}
			req.NoError(err, tt.description)
			req.Equal(tt.want, got, tt.description)
		})
	}
}
