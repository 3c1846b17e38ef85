package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit/ovp/internal/ovpapi"
	"github.com/streamkit/ovp/internal/transport"
	"github.com/streamkit/ovp/media"
)

func loadPlaylist(t *testing.T, sess Session, exec transport.Executor, req PlaylistRequest) (*media.Playlist, error) {
	t.Helper()
	p := NewPlaylistProvider(sess, Config{Executor: exec})
	var (
		playlist *media.Playlist
		resErr   error
		calls    int
	)
	p.LoadPlaylist(context.Background(), req, func(pl *media.Playlist, err error) {
		playlist, resErr = pl, err
		calls++
	})
	require.Equal(t, 1, calls, "completion must fire exactly once")
	return playlist, resErr
}

func TestLoadPlaylistMissingIdentifier(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	_, err := loadPlaylist(t, sess, &stubExecutor{respond: jsonResponse(`[]`)}, PlaylistRequest{})
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestLoadPlaylistByIDBatchShape(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	exec := &stubExecutor{respond: jsonResponse(playlistByIDBody)}

	_, err := loadPlaylist(t, sess, exec, PlaylistRequest{PlaylistID: "0_pl"})
	require.NoError(t, err)

	ops := exec.batches[0].Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "playlist", ops[0].Service)
	assert.Equal(t, "get", ops[0].Action)
	assert.Equal(t, "execute", ops[1].Action)
	assert.Equal(t, "0_pl", ops[0].Params["id"])
}

const playlistByIDBody = `[
  {"objectType":"KalturaPlaylist","id":"0_pl","name":"Road Trip","thumbnailUrl":"https://cdn/pl.jpg"},
  [
    {"objectType":"KalturaMediaEntry","id":"0_a","name":"First","msDuration":1000},
    {"objectType":"KalturaMediaEntry","id":"0_b","name":"Second","msDuration":2000}
  ]
]`

func TestLoadPlaylistByID(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	exec := &stubExecutor{respond: jsonResponse(playlistByIDBody)}

	playlist, err := loadPlaylist(t, sess, exec, PlaylistRequest{PlaylistID: "0_pl"})
	require.NoError(t, err)

	assert.Equal(t, "0_pl", playlist.ID)
	assert.Equal(t, "Road Trip", playlist.Name)
	require.Len(t, playlist.Entries, 2)
	assert.Equal(t, "0_a", playlist.Entries[0].ID)
	assert.Equal(t, int64(2000), playlist.Entries[1].DurationMs)
	// Members are stubs only.
	assert.Empty(t, playlist.Entries[0].Sources)
}

func TestLoadPlaylistByIDMissingHeader(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	body := `[[{"objectType":"KalturaMediaEntry","id":"0_a"}]]`
	exec := &stubExecutor{respond: jsonResponse(body)}

	_, err := loadPlaylist(t, sess, exec, PlaylistRequest{PlaylistID: "0_pl"})
	assert.ErrorIs(t, err, ErrIncompleteResponse)
}

func TestLoadPlaylistByIDNoItems(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	body := `[{"objectType":"KalturaPlaylist","id":"0_pl","name":"Empty"},[]]`
	exec := &stubExecutor{respond: jsonResponse(body)}

	_, err := loadPlaylist(t, sess, exec, PlaylistRequest{PlaylistID: "0_pl"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestLoadPlaylistByIDServerError(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	body := `[{"objectType":"KalturaAPIException","code":"PLAYLIST_NOT_FOUND","message":"gone"}]`
	exec := &stubExecutor{respond: jsonResponse(body)}

	_, err := loadPlaylist(t, sess, exec, PlaylistRequest{PlaylistID: "0_pl"})
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "PLAYLIST_NOT_FOUND", serverErr.Code)
}

func TestLoadPlaylistByIDsBatchShape(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101}
	body := `[
      {"objectType":"KalturaStartWidgetSessionResponse","ks":"ANON","partnerId":101},
      {"objectType":"KalturaBaseEntryListResponse","objects":[{"objectType":"KalturaMediaEntry","id":"0_a"}]},
      {"objectType":"KalturaBaseEntryListResponse","objects":[{"objectType":"KalturaMediaEntry","id":"0_b"}]}
    ]`
	exec := &stubExecutor{respond: jsonResponse(body)}

	_, err := loadPlaylist(t, sess, exec, PlaylistRequest{Assets: []MediaAsset{
		{ID: "0_a"}, {ReferenceID: "ref-b"},
	}})
	require.NoError(t, err)

	ops := exec.batches[0].Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, "startWidgetSession", ops[0].Action)
	for _, op := range ops[1:] {
		assert.Equal(t, ovpapi.AnonymousKS(), op.Params["ks"])
	}
	assert.Equal(t, "baseEntry", ops[1].Service)
}

// One failed member lookup yields a named placeholder in its slot; the
// playlist itself still resolves.
func TestLoadPlaylistByIDsDegradesErrorsToStubs(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	body := `[
      {"objectType":"KalturaBaseEntryListResponse","objects":[{"objectType":"KalturaMediaEntry","id":"0_a","name":"First"}]},
      {"objectType":"KalturaAPIException","code":"ENTRY_ID_NOT_FOUND","message":"no entry"},
      {"objectType":"KalturaBaseEntryListResponse","objects":[{"objectType":"KalturaMediaEntry","id":"0_c","name":"Third"}]}
    ]`
	exec := &stubExecutor{respond: jsonResponse(body)}

	playlist, err := loadPlaylist(t, sess, exec, PlaylistRequest{Assets: []MediaAsset{
		{ID: "0_a"}, {ID: "0_missing"}, {ID: "0_c"},
	}})
	require.NoError(t, err)

	require.Len(t, playlist.Entries, 3)
	assert.Equal(t, "0_a", playlist.Entries[0].ID)
	assert.Equal(t, "EMPTY-ID", playlist.Entries[1].ID)
	assert.Equal(t, "Unnamed", playlist.Entries[1].Name)
	assert.Equal(t, "0_c", playlist.Entries[2].ID)
}

func TestLoadPlaylistByIDsIncomplete(t *testing.T) {
	sess := &StaticSession{ServerURL: "https://cdn.example.com", Partner: 101, KS: "T"}
	body := `[
      {"objectType":"KalturaBaseEntryListResponse","objects":[{"objectType":"KalturaMediaEntry","id":"0_a"}]}
    ]`
	exec := &stubExecutor{respond: jsonResponse(body)}

	_, err := loadPlaylist(t, sess, exec, PlaylistRequest{Assets: []MediaAsset{
		{ID: "0_a"}, {ID: "0_b"},
	}})
	assert.ErrorIs(t, err, ErrIncompleteResponse)
}
