package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{5, "5"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{2.5, "2.5"},
		{0.0001, "0.0001"},
		{1e-6, "0.000001"},
		{1e6, "1000000"},
		{123456789012345680000, "123456789012345680000"},
		{1e21, "1e+21"},
		{1.5e21, "1.5e+21"},
		{-1e21, "-1e+21"},
		{1e-7, "1e-7"},
		{1.5e-7, "1.5e-7"},
		{5e-324, "5e-324"},
		{1e100, "1e+100"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestTransferEntry(t *testing.T) {
	assert.Equal(t, "alice sent 5 BTC to bob", TransferEntry("alice", 5, "BTC", "bob"))
	assert.Equal(t, "bob sent 0.5 ETH to alice", TransferEntry("bob", 0.5, "ETH", "alice"))
	assert.Equal(t, "alice sent 0 BTC to bob", TransferEntry("alice", math.Copysign(0, -1), "BTC", "bob"))
	assert.Equal(t, "alice sent 1e-7 BTC to bob", TransferEntry("alice", 1e-7, "BTC", "bob"))
}
