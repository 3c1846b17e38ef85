package sources

import (
	"strconv"

	"github.com/streamkit/ovp/media"
	"github.com/streamkit/ovp/internal/ovpapi"
)

// Context carries the session-scoped inputs URL synthesis needs.
type Context struct {
	BaseURL   string
	PartnerID int64
	UIConfID  int64
}

const defaultProtocol = "https"

// Resolve converts one raw delivery descriptor into a playable source.
// The second return is false when the descriptor cannot produce one:
// unknown format, a DRM-mandatory format whose descriptors all failed
// normalization, or a direct-URL descriptor with no URL. A dropped source
// is not an error; remaining descriptors still resolve.
func Resolve(src *ovpapi.Source, entryID string, ctx Context, ks string) (media.Source, bool) {
	format := Classify(src.Format, len(src.DRM) > 0)
	if format == media.FormatUnknown {
		return media.Source{}, false
	}

	drm := NormalizeDRM(src.DRM)
	if format == media.FormatWVM && len(drm) == 0 {
		// The format classification itself asserted DRM; without a usable
		// descriptor the rendition is unplayable.
		return media.Source{}, false
	}

	var playURL string
	if flavors := src.FlavorIDList(); len(flavors) > 0 {
		protocol := defaultProtocol
		if protocols := src.ProtocolList(); len(protocols) > 0 {
			protocol = protocols[len(protocols)-1]
		}
		playURL = FlavorURL(ctx.BaseURL, ctx.PartnerID, entryID, src.Format,
			flavors, protocol, ctx.UIConfID, ks, format.FileExtension())
	} else {
		if src.URL == "" {
			return media.Source{}, false
		}
		playURL = InjectKS(src.URL, ks)
	}

	return media.Source{
		ID:     entryID + "_" + strconv.FormatInt(src.DeliveryProfileID, 10),
		URL:    playURL,
		Format: format,
		DRM:    drm,
	}, true
}
