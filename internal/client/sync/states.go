package sync

// RowState is the per-row verdict the remote returns for one pushed record.
// The same token set is used for categories and notes; what differs is the
// local action taken (see the reconcilers).
type RowState int

const (
	// RowStateUnknown is the fallback for unrecognized tokens. It is logged
	// and otherwise ignored: no mutation, no failure.
	RowStateUnknown RowState = iota

	// RowStateCreated: the row carried no remote id and the remote created a
	// new record for it.
	RowStateCreated

	// RowStateRemoteNewer: the remote's stored copy has a later updated_at;
	// its fields are authoritative.
	RowStateRemoteNewer

	// RowStateRemoteDeprecated: the push updated the remote record; nothing
	// to do locally.
	RowStateRemoteDeprecated

	// RowStateInvalidRemoteID: the row carried a remote id unknown to the
	// server.
	RowStateInvalidRemoteID

	// RowStateRowError: a server-side failure processing this one row.
	RowStateRowError

	// RowStateNotFoundInRemote: the remote no longer has this record.
	RowStateNotFoundInRemote

	// RowStateUnchanged: local and remote already agree.
	RowStateUnchanged
)

var rowStateTokens = map[RowState]string{
	RowStateCreated:          "id-not-provided",
	RowStateRemoteNewer:      "remote-is-newer",
	RowStateRemoteDeprecated: "remote-is-deprecated",
	RowStateInvalidRemoteID:  "remote-id-not-valid",
	RowStateRowError:         "error-occurred",
	RowStateNotFoundInRemote: "not-found-in-remote",
	RowStateUnchanged:        "unchanged",
}

var tokenRowStates = func() map[string]RowState {
	m := make(map[string]RowState, len(rowStateTokens))
	for s, tok := range rowStateTokens {
		m[tok] = s
	}
	return m
}()

// ParseRowState maps a wire token to its RowState; anything unrecognized
// yields RowStateUnknown.
func ParseRowState(token string) RowState {
	if s, ok := tokenRowStates[token]; ok {
		return s
	}
	return RowStateUnknown
}

// String returns the wire token, or "unknown".
func (s RowState) String() string {
	if tok, ok := rowStateTokens[s]; ok {
		return tok
	}
	return "unknown"
}
