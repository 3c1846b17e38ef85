package ovpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Object is the closed union of response shapes a multirequest can yield.
// Each element of the response array decodes to exactly one of the concrete
// types below, keyed on the "objectType" discriminator.
type Object interface {
	isObject()
}

// APIException is a service-declared error element.
type APIException struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StartWidgetSession is the result of an anonymous login operation.
type StartWidgetSession struct {
	KS        string `json:"ks"`
	PartnerID int64  `json:"partnerId"`
}

// Entry is a catalog item. External and live-stream variants share the
// shape; External records which concrete server type produced the element.
type Entry struct {
	ID                 string `json:"id"`
	ReferenceID        string `json:"referenceId"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	ThumbnailURL       string `json:"thumbnailUrl"`
	Tags               string `json:"tags"`
	MsDuration         int64  `json:"msDuration"`
	Type               int    `json:"type"`
	DVRStatus          int    `json:"dvrStatus"`
	ExternalSourceType string `json:"externalSourceType"`
	External           bool   `json:"-"`
}

// Entry type discriminants as reported by the server.
const (
	EntryTypeMediaClip  = 1
	EntryTypeLiveStream = 7
)

// BaseEntryList is the result of a baseEntry.list operation.
type BaseEntryList struct {
	Objects []*Entry
}

// EntryArray is a bare array element, produced by playlist.execute.
type EntryArray struct {
	Objects []*Entry
}

// MetadataList is the result of a metadata_metadata.list operation.
type MetadataList struct {
	Objects []*Metadata
}

// Metadata is one custom-metadata blob attached to an entry.
type Metadata struct {
	ID  string `json:"id"`
	XML string `json:"xml"`
}

// PlaybackContext carries the delivery descriptors for an entry.
type PlaybackContext struct {
	Sources          []*Source               `json:"sources"`
	PlaybackCaptions []*Caption              `json:"playbackCaptions"`
	Actions          []*RuleAction           `json:"actions"`
	Messages         []*AccessControlMessage `json:"messages"`
}

const ruleActionBlock = 1

// HasBlockAction reports whether access control blocked playback.
func (c *PlaybackContext) HasBlockAction() bool {
	for _, a := range c.Actions {
		if a != nil && a.Type == ruleActionBlock {
			return true
		}
	}
	return false
}

// ErrorMessage returns the first non-OK access control message, if any.
func (c *PlaybackContext) ErrorMessage() *AccessControlMessage {
	for _, m := range c.Messages {
		if m != nil && m.Code != "" && m.Code != "OK" {
			return m
		}
	}
	return nil
}

// Source is one delivery descriptor: a format tag plus either a flavor set
// or a ready-made URL.
type Source struct {
	DeliveryProfileID int64  `json:"deliveryProfileId"`
	Format            string `json:"format"`
	URL               string `json:"url"`
	Protocols         string `json:"protocols"`
	FlavorIDs         string `json:"flavorIds"`
	DRM               []*DRM `json:"drm"`
}

// ProtocolList splits the comma-separated protocol field, preserving order.
func (s *Source) ProtocolList() []string {
	return splitList(s.Protocols)
}

// FlavorIDList splits the comma-separated flavor id field, preserving order.
func (s *Source) FlavorIDList() []string {
	return splitList(s.FlavorIDs)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DRM is a content-protection descriptor attached to a source.
type DRM struct {
	Scheme      string `json:"scheme"`
	LicenseURL  string `json:"licenseURL"`
	Certificate string `json:"certificate"`
}

// Caption is an external caption track offered by the playback context.
type Caption struct {
	Label        string `json:"label"`
	Language     string `json:"language"`
	LanguageCode string `json:"languageCode"`
	WebVttURL    string `json:"webVttUrl"`
	URL          string `json:"url"`
	Format       string `json:"format"`
}

type RuleAction struct {
	Type int `json:"type"`
}

type AccessControlMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Playlist is the result of a playlist.get operation.
type Playlist struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Unknown is an element whose discriminator matches no known shape. The
// correlator ignores it.
type Unknown struct {
	ObjectType string
}

func (*APIException) isObject()       {}
func (*StartWidgetSession) isObject() {}
func (*BaseEntryList) isObject()      {}
func (*EntryArray) isObject()         {}
func (*MetadataList) isObject()       {}
func (*PlaybackContext) isObject()    {}
func (*Playlist) isObject()           {}
func (*Unknown) isObject()            {}

type probe struct {
	ObjectType string `json:"objectType"`
}

type listEnvelope struct {
	Objects []json.RawMessage `json:"objects"`
}

// ParseMulti decodes a multirequest response body into the ordered Object
// union. The body is a JSON array with one element per submitted operation;
// some deployments wrap it in a {"result": ...} envelope.
func ParseMulti(data []byte) ([]Object, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil, fmt.Errorf("ovpapi: empty response body")
	}
	if raw[0] == '{' {
		var wrapped struct {
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("ovpapi: decode response envelope: %w", err)
		}
		if len(wrapped.Result) == 0 {
			// A bare exception object may arrive without the array wrapper.
			obj, err := decodeObject(raw)
			if err != nil {
				return nil, err
			}
			return []Object{obj}, nil
		}
		raw = bytes.TrimSpace(wrapped.Result)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("ovpapi: decode response array: %w", err)
	}

	objects := make([]Object, 0, len(elements))
	for i, elem := range elements {
		obj, err := decodeElement(elem)
		if err != nil {
			return nil, fmt.Errorf("ovpapi: response element %d: %w", i+1, err)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func decodeElement(raw json.RawMessage) (Object, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		arr := &EntryArray{}
		for _, item := range items {
			entry, err := decodeEntry(item)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				arr.Objects = append(arr.Objects, entry)
			}
		}
		return arr, nil
	}
	return decodeObject(trimmed)
}

func decodeObject(raw json.RawMessage) (Object, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	switch p.ObjectType {
	case "KalturaAPIException":
		obj := &APIException{}
		return obj, json.Unmarshal(raw, obj)
	case "KalturaStartWidgetSessionResponse":
		obj := &StartWidgetSession{}
		return obj, json.Unmarshal(raw, obj)
	case "KalturaBaseEntryListResponse", "KalturaMediaListResponse":
		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		list := &BaseEntryList{}
		for _, item := range env.Objects {
			entry, err := decodeEntry(item)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				list.Objects = append(list.Objects, entry)
			}
		}
		return list, nil
	case "KalturaMetadataListResponse":
		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		list := &MetadataList{}
		for _, item := range env.Objects {
			meta := &Metadata{}
			if err := json.Unmarshal(item, meta); err != nil {
				return nil, err
			}
			list.Objects = append(list.Objects, meta)
		}
		return list, nil
	case "KalturaPlaybackContext":
		obj := &PlaybackContext{}
		return obj, json.Unmarshal(raw, obj)
	case "KalturaPlaylist":
		obj := &Playlist{}
		return obj, json.Unmarshal(raw, obj)
	default:
		return &Unknown{ObjectType: p.ObjectType}, nil
	}
}

func decodeEntry(raw json.RawMessage) (*Entry, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	entry := &Entry{}
	if err := json.Unmarshal(raw, entry); err != nil {
		return nil, err
	}
	if entry.ID == "" {
		return nil, nil
	}
	entry.External = p.ObjectType == "KalturaExternalMediaEntry"
	return entry, nil
}

// NewStubEntry is the placeholder substituted for a per-item server error in
// the id-list playlist path.
func NewStubEntry() *Entry {
	return &Entry{ID: "EMPTY-ID", Name: "Unnamed"}
}
