package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"BUY", Buy, false},
		{"SELL", Sell, false},
		{"buy", Buy, false},
		{" sell ", Sell, false},
		{"", 0, true},
		{"HOLD", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSide(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestSideAndStatusStrings(t *testing.T) {
	assert.Equal(t, "BUY", Buy.String())
	assert.Equal(t, "SELL", Sell.String())
	assert.Equal(t, "ACTIVE", Active.String())
	assert.Equal(t, "CANCELLED", Cancelled.String())
}

func TestCancelErrorMessages(t *testing.T) {
	notFound := &CancelError{Kind: CancelNotFound, OrderID: 999}
	assert.Contains(t, notFound.Error(), "999")
	assert.Contains(t, notFound.Error(), "unable to find")

	already := &CancelError{Kind: CancelAlreadyCancelled, OrderID: 7, CancelledBy: "Bob"}
	assert.Contains(t, already.Error(), "order id 7")
	assert.Contains(t, already.Error(), `already cancelled by user "Bob"`)
}
