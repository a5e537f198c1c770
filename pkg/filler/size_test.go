package filler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uhthomas/kindlefill/pkg/filler"
)

func TestParseSize(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want int64
	}{
		{"1mb", 1048576},
		{"1.5gb", 1610612736},
		{"100", 100},
		{"1kb", 1024},
		{"1KB", 1024},
		{" 2Mb ", 2097152},
		{"4.78gb", 5132485918},
		{"0.5kb", 512},
		{"1.9", 1},
		{"10.7mb", 11219763},
		{"1.5 gb", 1610612736},
	} {
		t.Run(tt.in, func(t *testing.T) {
			got, err := filler.ParseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	for _, in := range []string{
		"abcgb",
		"gb",
		"",
		"100b",
		"1tb",
		"0",
		"0mb",
		"-5mb",
		"0.1",
		"nan",
		"infgb",
		"1e30gb",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := filler.ParseSize(in)
			assert.ErrorIs(t, err, filler.ErrInvalidSize)
		})
	}
}
