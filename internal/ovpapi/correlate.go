package ovpapi

// Classified holds the response elements of one batch, bucketed by logical
// role. Accumulating slots collect every element of their shape; scalar
// slots keep the last writer.
type Classified struct {
	Entries       *BaseEntryList
	Metadata      *MetadataList
	Playback      *PlaybackContext
	Playlist      *Playlist
	PlaylistItems []*Entry
	WidgetSession *StartWidgetSession
}

// Correlate classifies the ordered response elements. The first error
// element wins: classification stops there and the exception is returned,
// even if later elements would have parsed successfully.
func Correlate(objects []Object) (*Classified, *APIException) {
	c := &Classified{}
	for _, obj := range objects {
		switch v := obj.(type) {
		case *APIException:
			return nil, v
		case *BaseEntryList:
			c.Entries = v
		case *MetadataList:
			c.Metadata = v
		case *PlaybackContext:
			c.Playback = v
		case *Playlist:
			c.Playlist = v
		case *EntryArray:
			c.PlaylistItems = append(c.PlaylistItems, v.Objects...)
		case *StartWidgetSession:
			c.WidgetSession = v
		case *Unknown:
			// not a role this engine consumes
		}
	}
	return c, nil
}

// CollectEntries gathers entries from a batch of per-id lookups. A server
// error element degrades to a placeholder stub instead of failing the whole
// batch; elements of other shapes are skipped.
func CollectEntries(objects []Object) []*Entry {
	var entries []*Entry
	for _, obj := range objects {
		switch v := obj.(type) {
		case *BaseEntryList:
			entries = append(entries, v.Objects...)
		case *APIException:
			entries = append(entries, NewStubEntry())
		}
	}
	return entries
}
