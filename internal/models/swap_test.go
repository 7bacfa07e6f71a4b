package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapActionValid(t *testing.T) {
	tests := []struct {
		action SwapAction
		valid  bool
	}{
		{SwapActionAccept, true},
		{SwapActionReject, true},
		{SwapActionComplete, true},
		{SwapActionCancel, true},
		{SwapAction("approve"), false},
		{SwapAction(""), false},
		{SwapAction("Accept"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.action.Valid())
		})
	}
}

func TestSwapActionEdges(t *testing.T) {
	tests := []struct {
		name     string
		action   SwapAction
		required SwapStatus
		target   SwapStatus
	}{
		{"accept moves pending to accepted", SwapActionAccept, SwapPending, SwapAccepted},
		{"reject moves pending to rejected", SwapActionReject, SwapPending, SwapRejected},
		{"cancel moves pending to cancelled", SwapActionCancel, SwapPending, SwapCancelled},
		{"complete moves accepted to completed", SwapActionComplete, SwapAccepted, SwapCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.required, tt.action.Required())
			assert.Equal(t, tt.target, tt.action.Target())
		})
	}
}
