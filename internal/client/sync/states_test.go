package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRowState(t *testing.T) {
	tests := []struct {
		token string
		want  RowState
	}{
		{"id-not-provided", RowStateCreated},
		{"remote-is-newer", RowStateRemoteNewer},
		{"remote-is-deprecated", RowStateRemoteDeprecated},
		{"remote-id-not-valid", RowStateInvalidRemoteID},
		{"error-occurred", RowStateRowError},
		{"not-found-in-remote", RowStateNotFoundInRemote},
		{"unchanged", RowStateUnchanged},
		{"something-else", RowStateUnknown},
		{"", RowStateUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRowState(tt.token), tt.token)
	}
}

func TestRowStateString(t *testing.T) {
	assert.Equal(t, "remote-is-newer", RowStateRemoteNewer.String())
	assert.Equal(t, "unknown", RowStateUnknown.String())
	assert.Equal(t, "unknown", RowState(99).String())
}
