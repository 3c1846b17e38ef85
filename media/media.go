// Package media holds the immutable result records the resolution engine
// hands to the caller.
package media

// Format is the playback container/protocol classification of a source.
type Format int

const (
	FormatUnknown Format = iota
	FormatHLS
	FormatMP4
	FormatWVM
)

func (f Format) String() string {
	switch f {
	case FormatHLS:
		return "hls"
	case FormatMP4:
		return "mp4"
	case FormatWVM:
		return "wvm"
	default:
		return "unknown"
	}
}

// FileExtension returns the manifest/file extension the playback server
// expects for the format.
func (f Format) FileExtension() string {
	switch f {
	case FormatHLS:
		return "m3u8"
	case FormatMP4:
		return "mp4"
	case FormatWVM:
		return "wvm"
	default:
		return ""
	}
}

// DRMScheme is the normalized content-protection technology of a source.
type DRMScheme int

const (
	SchemeUnknown DRMScheme = iota
	SchemeWidevineCenc
	SchemePlayReadyCenc
	SchemeWidevineClassic
	SchemeFairPlay
)

func (s DRMScheme) String() string {
	switch s {
	case SchemeWidevineCenc:
		return "widevine-cenc"
	case SchemePlayReadyCenc:
		return "playready-cenc"
	case SchemeWidevineClassic:
		return "widevine-classic"
	case SchemeFairPlay:
		return "fairplay"
	default:
		return "unknown"
	}
}

// DRMParams is the normalized parameter set of one protection descriptor.
type DRMParams struct {
	Scheme      DRMScheme
	LicenseURL  string
	Certificate string
}

// Source is one concrete, playable rendition of an entry.
type Source struct {
	ID     string
	URL    string
	Format Format
	DRM    []DRMParams
}

// Type classifies an entry for the player.
type Type int

const (
	TypeUnknown Type = iota
	TypeVOD
	TypeLive
	TypeDVRLive
)

func (t Type) String() string {
	switch t {
	case TypeVOD:
		return "vod"
	case TypeLive:
		return "live"
	case TypeDVRLive:
		return "dvr-live"
	default:
		return "unknown"
	}
}

// ExternalSubtitle is a caption track served outside the media manifest.
type ExternalSubtitle struct {
	ID       string
	Name     string
	Language string
	URL      string
	Duration int64
}

// Entry is the fully resolved media result. Produced exactly once per
// resolution; never returned with zero sources.
type Entry struct {
	ID                string
	Name              string
	DurationMs        int64
	Sources           []Source
	Metadata          map[string]string
	Tags              string
	Type              Type
	ThumbnailURL      string
	ExternalSubtitles []ExternalSubtitle
}

// Playlist is an ordered collection of lightweight entry stubs. Stub entries
// carry identity only; their sources are never resolved.
type Playlist struct {
	ID           string
	Name         string
	ThumbnailURL string
	Entries      []Entry
}
