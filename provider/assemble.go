package provider

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/streamkit/ovp/internal/ovpapi"
	"github.com/streamkit/ovp/internal/sources"
	"github.com/streamkit/ovp/media"
)

// externalSourceAllowList is the one external-source type allowed to ship
// without resolved sources (playback happens outside the catalog).
const externalSourceAllowList = "YouTube"

type assembleParams struct {
	entry     *ovpapi.Entry
	sources   []media.Source
	metadata  []*ovpapi.Metadata
	captions  []*ovpapi.Caption
	partnerID int64
	captionKS string
	log       zerolog.Logger
}

// assembleEntry merges entry identity, resolved sources, flattened metadata
// and captions into the final immutable result, or fails the resolution. A
// result with zero playable sources is never returned successfully.
func assembleEntry(p assembleParams) (*media.Entry, error) {
	meta := flattenMetadata(p.metadata, p.log)
	meta["partnerId"] = strconv.FormatInt(p.partnerID, 10)
	meta["entryId"] = p.entry.ID

	if p.entry.External {
		if p.entry.ExternalSourceType != externalSourceAllowList && len(p.sources) == 0 {
			return nil, ErrInvalidResponse
		}
		meta["externalSourceType"] = p.entry.ExternalSourceType
		meta["referenceId"] = p.entry.ReferenceID
	} else if len(p.sources) == 0 {
		return nil, ErrInvalidResponse
	}

	out := &media.Entry{
		ID:           p.entry.ID,
		Name:         p.entry.Name,
		DurationMs:   p.entry.MsDuration,
		Sources:      p.sources,
		Metadata:     meta,
		Tags:         p.entry.Tags,
		ThumbnailURL: p.entry.ThumbnailURL,
		Type:         classifyType(p.entry),
	}

	for _, c := range p.captions {
		if c == nil || c.WebVttURL == "" {
			continue
		}
		out.ExternalSubtitles = append(out.ExternalSubtitles, media.ExternalSubtitle{
			ID:       c.Label + c.LanguageCode + c.WebVttURL,
			Name:     c.Label,
			Language: c.LanguageCode,
			URL:      sources.InjectKS(c.WebVttURL, p.captionKS),
			Duration: -1,
		})
	}

	return out, nil
}

func classifyType(entry *ovpapi.Entry) media.Type {
	t := media.TypeUnknown
	switch entry.Type {
	case ovpapi.EntryTypeMediaClip:
		t = media.TypeVOD
	case ovpapi.EntryTypeLiveStream:
		t = media.TypeLive
	}
	if entry.Type == ovpapi.EntryTypeLiveStream && entry.DVRStatus != 0 {
		t = media.TypeDVRLive
	}
	return t
}

type metadataNode struct {
	XMLName  xml.Name
	Content  string         `xml:",chardata"`
	Children []metadataNode `xml:",any"`
}

// flattenMetadata walks the immediate children of each blob's <metadata>
// root and writes name -> text into one flat mapping. Last write wins on
// key collision across blobs; blobs that fail to parse are skipped.
func flattenMetadata(blobs []*ovpapi.Metadata, logger zerolog.Logger) map[string]string {
	items := map[string]string{}
	for _, blob := range blobs {
		if blob == nil || blob.XML == "" {
			continue
		}
		var root metadataNode
		if err := xml.Unmarshal([]byte(blob.XML), &root); err != nil {
			logger.Warn().Err(err).Str("metadata_id", blob.ID).Msg("skipping unparseable metadata blob")
			continue
		}
		if root.XMLName.Local != "metadata" {
			continue
		}
		for _, child := range root.Children {
			items[child.XMLName.Local] = strings.TrimSpace(child.Content)
		}
	}
	return items
}

