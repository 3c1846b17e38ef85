// Package sources converts raw delivery descriptors into concrete playable
// sources: format classification, DRM normalization and URL synthesis.
package sources

import "github.com/streamkit/ovp/media"

// Classify maps a server format tag to a playback format. The "url" and
// "mbr" tags are ambiguous on the wire; the presence of DRM disambiguates
// them. Unknown tags classify to FormatUnknown and the source is dropped.
func Classify(formatTag string, hasDRM bool) media.Format {
	switch formatTag {
	case "applehttp":
		return media.FormatHLS
	case "url":
		if hasDRM {
			return media.FormatWVM
		}
		return media.FormatMP4
	case "mbr":
		if hasDRM {
			return media.FormatUnknown
		}
		return media.FormatMP4
	default:
		return media.FormatUnknown
	}
}

// ConvertScheme maps the server's free-text DRM scheme name onto the closed
// scheme enum.
func ConvertScheme(name string) media.DRMScheme {
	switch name {
	case "drm.WIDEVINE_CENC":
		return media.SchemeWidevineCenc
	case "drm.PLAYREADY_CENC":
		return media.SchemePlayReadyCenc
	case "widevine.WIDEVINE":
		return media.SchemeWidevineClassic
	case "fairplay.FAIRPLAY":
		return media.SchemeFairPlay
	default:
		return media.SchemeUnknown
	}
}
