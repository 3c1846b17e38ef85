package ovpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mediaResponseBody = `[
  {"objectType":"KalturaStartWidgetSessionResponse","ks":"anon-ks","partnerId":101},
  {"objectType":"KalturaBaseEntryListResponse","objects":[
    {"objectType":"KalturaMediaEntry","id":"0_abc","name":"Big Buck Bunny",
     "msDuration":596000,"type":1,"tags":"animation,short","thumbnailUrl":"https://cdn/thumb.jpg"}
  ]},
  {"objectType":"KalturaPlaybackContext",
   "sources":[{"deliveryProfileId":1001,"format":"applehttp","protocols":"http,https",
               "flavorIds":"0_f1,0_f2","drm":[]}],
   "playbackCaptions":[{"label":"English","languageCode":"en","webVttUrl":"https://cdn/caps/en.vtt"}],
   "actions":[],"messages":[]},
  {"objectType":"KalturaMetadataListResponse","objects":[{"id":"m1","xml":"<metadata><Genre>Animation</Genre></metadata>"}]}
]`

func TestParseMultiDecodesKnownShapes(t *testing.T) {
	objects, err := ParseMulti([]byte(mediaResponseBody))
	require.NoError(t, err)
	require.Len(t, objects, 4)

	widget, ok := objects[0].(*StartWidgetSession)
	require.True(t, ok)
	assert.Equal(t, "anon-ks", widget.KS)

	list, ok := objects[1].(*BaseEntryList)
	require.True(t, ok)
	require.Len(t, list.Objects, 1)
	assert.Equal(t, "0_abc", list.Objects[0].ID)
	assert.Equal(t, int64(596000), list.Objects[0].MsDuration)
	assert.False(t, list.Objects[0].External)

	pb, ok := objects[2].(*PlaybackContext)
	require.True(t, ok)
	require.Len(t, pb.Sources, 1)
	assert.Equal(t, []string{"0_f1", "0_f2"}, pb.Sources[0].FlavorIDList())
	assert.Equal(t, []string{"http", "https"}, pb.Sources[0].ProtocolList())

	meta, ok := objects[3].(*MetadataList)
	require.True(t, ok)
	require.Len(t, meta.Objects, 1)
}

func TestParseMultiDecodesResultEnvelope(t *testing.T) {
	body := `{"result":[{"objectType":"KalturaAPIException","code":"INVALID_KS","message":"bad token"}]}`
	objects, err := ParseMulti([]byte(body))
	require.NoError(t, err)
	require.Len(t, objects, 1)

	exc, ok := objects[0].(*APIException)
	require.True(t, ok)
	assert.Equal(t, "INVALID_KS", exc.Code)
}

func TestParseMultiDecodesBareEntryArray(t *testing.T) {
	body := `[
      {"objectType":"KalturaPlaylist","id":"pl_1","name":"Favorites"},
      [{"objectType":"KalturaMediaEntry","id":"0_a","name":"One"},
       {"objectType":"KalturaMediaEntry","id":"0_b","name":"Two"}]
    ]`
	objects, err := ParseMulti([]byte(body))
	require.NoError(t, err)
	require.Len(t, objects, 2)

	arr, ok := objects[1].(*EntryArray)
	require.True(t, ok)
	require.Len(t, arr.Objects, 2)
	assert.Equal(t, "0_b", arr.Objects[1].ID)
}

func TestParseMultiMarksExternalEntries(t *testing.T) {
	body := `[{"objectType":"KalturaBaseEntryListResponse","objects":[
      {"objectType":"KalturaExternalMediaEntry","id":"0_ext","externalSourceType":"YouTube"}]}]`
	objects, err := ParseMulti([]byte(body))
	require.NoError(t, err)

	list := objects[0].(*BaseEntryList)
	require.Len(t, list.Objects, 1)
	assert.True(t, list.Objects[0].External)
	assert.Equal(t, "YouTube", list.Objects[0].ExternalSourceType)
}

func TestParseMultiUnknownShapeIsTolerated(t *testing.T) {
	body := `[{"objectType":"KalturaSomethingNew","x":1}]`
	objects, err := ParseMulti([]byte(body))
	require.NoError(t, err)

	unknown, ok := objects[0].(*Unknown)
	require.True(t, ok)
	assert.Equal(t, "KalturaSomethingNew", unknown.ObjectType)
}

func TestParseMultiRejectsGarbage(t *testing.T) {
	_, err := ParseMulti([]byte("<html>gateway timeout</html>"))
	require.Error(t, err)
	_, err = ParseMulti(nil)
	require.Error(t, err)
}

func TestPlaybackContextBlockAction(t *testing.T) {
	pb := &PlaybackContext{
		Actions:  []*RuleAction{{Type: ruleActionBlock}},
		Messages: []*AccessControlMessage{{Code: "OK", Message: ""}, {Code: "COUNTRY_RESTRICTED", Message: "not available"}},
	}
	assert.True(t, pb.HasBlockAction())
	msg := pb.ErrorMessage()
	require.NotNil(t, msg)
	assert.Equal(t, "COUNTRY_RESTRICTED", msg.Code)

	empty := &PlaybackContext{}
	assert.False(t, empty.HasBlockAction())
	assert.Nil(t, empty.ErrorMessage())
}
