package ovpapi

import (
	"errors"
	"strconv"
)

// ErrMissingIdentifier is returned by a service constructor when the
// operation cannot be built without an identifier. The batch is never sent
// in that case.
var ErrMissingIdentifier = errors.New("ovpapi: missing identifier")

const (
	entryResponseFields = "id,referenceId,name,description,thumbnailUrl,dataUrl," +
		"duration,msDuration,flavorParamsIds,mediaType,type,tags,dvrStatus," +
		"externalSourceType,status"
	playlistResponseFields = "id,name,description,thumbnailUrl"
)

// NewStartWidgetSession builds the anonymous login operation. It must sit at
// batch position 1 so the AnonymousKS forward reference resolves against it.
func NewStartWidgetSession(partnerID int64) *Operation {
	return NewOperation("session", "startWidgetSession").
		Set("widgetId", "_"+strconv.FormatInt(partnerID, 10))
}

// NewBaseEntryList builds the entry lookup. Exactly one of entryID and
// referenceID must be non-empty; ks may be a literal token or a ForwardRef.
func NewBaseEntryList(ks any, entryID, referenceID string) (*Operation, error) {
	op := NewOperation("baseEntry", "list").Set("ks", ks)
	switch {
	case entryID != "":
		op.Set("filter", map[string]any{"redirectFromEntryId": entryID})
	case referenceID != "":
		op.Set("filter", map[string]any{"referenceIdEqual": referenceID})
	default:
		return nil, ErrMissingIdentifier
	}
	op.Set("responseProfile", map[string]any{
		"type":   1,
		"fields": entryResponseFields,
	})
	return op, nil
}

// GetPlaybackContext builds the delivery lookup for an entry. The entry id is
// typically a ForwardRef into the preceding BaseEntryList result.
func GetPlaybackContext(ks any, entryID any, referrer string) *Operation {
	contextData := map[string]any{"objectType": "KalturaContextDataParams"}
	if referrer != "" {
		contextData["referrer"] = referrer
	}
	return NewOperation("baseEntry", "getPlaybackContext").
		Set("ks", ks).
		Set("entryId", entryID).
		Set("contextDataParams", contextData)
}

// NewMetadataList builds the custom-metadata lookup for an entry.
func NewMetadataList(ks any, objectID any) *Operation {
	return NewOperation("metadata_metadata", "list").
		Set("ks", ks).
		Set("filter", map[string]any{
			"objectIdEqual":           objectID,
			"metadataObjectTypeEqual": 1,
		})
}

// PlaylistGet builds the playlist header lookup.
func PlaylistGet(ks any, playlistID string) (*Operation, error) {
	if playlistID == "" {
		return nil, ErrMissingIdentifier
	}
	return NewOperation("playlist", "get").
		Set("ks", ks).
		Set("id", playlistID).
		Set("responseProfile", map[string]any{
			"type":   1,
			"fields": playlistResponseFields,
		}), nil
}

// PlaylistExecute builds the playlist member expansion.
func PlaylistExecute(ks any, playlistID string) (*Operation, error) {
	if playlistID == "" {
		return nil, ErrMissingIdentifier
	}
	return NewOperation("playlist", "execute").
		Set("ks", ks).
		Set("id", playlistID).
		Set("responseProfile", map[string]any{
			"type":   1,
			"fields": entryResponseFields,
		}), nil
}
