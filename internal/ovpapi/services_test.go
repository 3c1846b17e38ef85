package ovpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWidgetSession(t *testing.T) {
	op := NewStartWidgetSession(101)
	assert.Equal(t, "session", op.Service)
	assert.Equal(t, "startWidgetSession", op.Action)
	assert.Equal(t, "_101", op.Params["widgetId"])
}

func TestBaseEntryListFilters(t *testing.T) {
	op, err := NewBaseEntryList("tok", "0_abc", "")
	require.NoError(t, err)
	filter, ok := op.Params["filter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0_abc", filter["redirectFromEntryId"])

	op, err = NewBaseEntryList("tok", "", "my-ref")
	require.NoError(t, err)
	filter = op.Params["filter"].(map[string]any)
	assert.Equal(t, "my-ref", filter["referenceIdEqual"])

	// No identifier is a hard stop, never a partial batch.
	_, err = NewBaseEntryList("tok", "", "")
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestGetPlaybackContextForwardsReferrer(t *testing.T) {
	op := GetPlaybackContext(AnonymousKS(), Result(2, "objects:0:id"), "https://app.example.com")
	assert.Equal(t, "baseEntry", op.Service)
	assert.Equal(t, "getPlaybackContext", op.Action)
	ctxData := op.Params["contextDataParams"].(map[string]any)
	assert.Equal(t, "https://app.example.com", ctxData["referrer"])
	assert.Equal(t, "KalturaContextDataParams", ctxData["objectType"])

	op = GetPlaybackContext("tok", "0_abc", "")
	ctxData = op.Params["contextDataParams"].(map[string]any)
	_, hasReferrer := ctxData["referrer"]
	assert.False(t, hasReferrer)
}

func TestMetadataList(t *testing.T) {
	op := NewMetadataList("tok", Result(1, "objects:0:id"))
	assert.Equal(t, "metadata_metadata", op.Service)
	filter := op.Params["filter"].(map[string]any)
	assert.Equal(t, Result(1, "objects:0:id"), filter["objectIdEqual"])
}

func TestPlaylistOpsRequireID(t *testing.T) {
	_, err := PlaylistGet("tok", "")
	assert.ErrorIs(t, err, ErrMissingIdentifier)
	_, err = PlaylistExecute("tok", "")
	assert.ErrorIs(t, err, ErrMissingIdentifier)

	op, err := PlaylistGet("tok", "pl_1")
	require.NoError(t, err)
	assert.Equal(t, "playlist", op.Service)
	assert.Equal(t, "get", op.Action)
	assert.Equal(t, "pl_1", op.Params["id"])

	op, err = PlaylistExecute("tok", "pl_1")
	require.NoError(t, err)
	assert.Equal(t, "execute", op.Action)
}
