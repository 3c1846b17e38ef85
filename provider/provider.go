// Package provider resolves playable media descriptions from a remote OVP
// catalog/entitlement service: it authenticates opportunistically, builds
// one batched multirequest whose later operations forward-reference earlier
// results, correlates the heterogeneous response array back to logical
// roles, and synthesizes DRM-aware playback URLs from raw delivery
// descriptors. Each resolution delivers its result exactly once through a
// completion callback; the engine performs no retries and no caching.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/streamkit/ovp/internal/log"
	"github.com/streamkit/ovp/internal/ovpapi"
	"github.com/streamkit/ovp/internal/session"
	"github.com/streamkit/ovp/internal/sources"
	"github.com/streamkit/ovp/internal/transport"
	"github.com/streamkit/ovp/media"
)

// MediaRequest identifies the entry to resolve. The value is immutable for
// the duration of the resolution; one provider may serve overlapping
// resolutions with different requests.
type MediaRequest struct {
	// EntryID is the catalog entry to play. Either EntryID or ReferenceID
	// must be set.
	EntryID string
	// ReferenceID is an alternate lookup key for the entry.
	ReferenceID string
	// UIConfID optionally participates in flavor URL synthesis.
	UIConfID int64
	// Referrer is forwarded to the entitlement check.
	Referrer string
	// APICaptions populates ExternalSubtitles from the playback context.
	APICaptions bool
}

// MediaProvider resolves single entries. Safe for concurrent use; each
// resolution owns its batch and classified-response state exclusively.
type MediaProvider struct {
	session  Session
	executor transport.Executor
	log      zerolog.Logger
}

// NewMediaProvider builds a provider around the caller-owned session.
func NewMediaProvider(sess Session, cfg Config) *MediaProvider {
	log.Configure(log.Config{Level: cfg.LogLevel})
	return &MediaProvider{
		session:  sess,
		executor: cfg.executor(),
		log:      log.WithComponent("media-provider"),
	}
}

func apiBaseURL(serverURL string) string {
	return strings.TrimRight(serverURL, "/") + "/api_v3"
}

// LoadMedia starts one resolution and returns its cancel handle. The
// callback is invoked exactly once, with either a fully assembled entry or
// a terminal error; partial successes do not exist.
func (p *MediaProvider) LoadMedia(ctx context.Context, req MediaRequest, callback func(*media.Entry, error)) *Resolution {
	res := &Resolution{}

	if p.session == nil {
		res.deliverEntry(callback, nil, ErrMissingSessionInfo)
		return res
	}
	if req.EntryID == "" && req.ReferenceID == "" {
		res.deliverEntry(callback, nil, fmt.Errorf("%w: entry id or reference id", ErrMissingIdentifier))
		return res
	}

	logger := p.log.With().
		Str(log.FieldRequestID, uuid.NewString()).
		Str(log.FieldEntryID, req.EntryID).
		Logger()

	session.Resolve(p.session, func(plan session.TokenPlan) {
		p.startLoading(ctx, req, plan, res, logger, callback)
	})
	return res
}

func (p *MediaProvider) startLoading(ctx context.Context, req MediaRequest, plan session.TokenPlan, res *Resolution, logger zerolog.Logger, callback func(*media.Entry, error)) {
	partnerID := p.session.PartnerID()
	batch := ovpapi.NewMultiRequest(apiBaseURL(p.session.BaseURL()))

	if plan.Anonymous() {
		logger.Debug().Msg("no session token, resolving anonymously")
		batch.Add(ovpapi.NewStartWidgetSession(partnerID))
	}

	ks := plan.KS()
	entryRef := plan.EntryResultRef()

	listOp, err := ovpapi.NewBaseEntryList(ks, req.EntryID, req.ReferenceID)
	if err != nil {
		res.deliverEntry(callback, nil, fmt.Errorf("%w: %v", ErrMissingIdentifier, err))
		return
	}
	batch.Add(
		listOp,
		ovpapi.GetPlaybackContext(ks, entryRef, req.Referrer),
		ovpapi.NewMetadataList(ks, entryRef),
	)

	if err := batch.Validate(); err != nil {
		res.deliverEntry(callback, nil, fmt.Errorf("%w: %v", ErrAnonymousLoginUnavailable, err))
		return
	}

	p.executor.Send(ctx, batch, func(resp transport.Response) {
		entry, err := p.interpret(req, plan, resp, logger)
		res.deliverEntry(callback, entry, err)
	})
}

func (p *MediaProvider) interpret(req MediaRequest, plan session.TokenPlan, resp transport.Response, logger zerolog.Logger) (*media.Entry, error) {
	objects, err := decodeBatch(resp)
	if err != nil {
		return nil, err
	}

	classified, apiErr := ovpapi.Correlate(objects)
	if apiErr != nil {
		logger.Debug().Str("code", apiErr.Code).Msg("service declared an error")
		return nil, &ServerError{Code: apiErr.Code, Message: apiErr.Message}
	}

	if classified.Entries == nil || len(classified.Entries.Objects) == 0 ||
		classified.Playback == nil || classified.Metadata == nil {
		return nil, fmt.Errorf("%w: entry, playback context and metadata are required", ErrIncompleteResponse)
	}

	if classified.Playback.HasBlockAction() {
		if msg := classified.Playback.ErrorMessage(); msg != nil {
			return nil, &ServerError{Code: msg.Code, Message: msg.Message}
		}
		return nil, &ServerError{Code: "Blocked", Message: "Blocked"}
	}

	baseEntry := classified.Entries.Objects[len(classified.Entries.Objects)-1]

	// On the anonymous path source URLs carry the token minted by the
	// login operation, not the (absent) caller token.
	ksForURL := plan.LiteralKS()
	if classified.WidgetSession != nil {
		ksForURL = classified.WidgetSession.KS
	}

	srcCtx := sources.Context{
		BaseURL:   p.session.BaseURL(),
		PartnerID: p.session.PartnerID(),
		UIConfID:  req.UIConfID,
	}
	var resolved []media.Source
	for _, src := range classified.Playback.Sources {
		s, ok := sources.Resolve(src, baseEntry.ID, srcCtx, ksForURL)
		if !ok {
			logger.Debug().
				Str("format", src.Format).
				Int64("delivery_profile", src.DeliveryProfileID).
				Msg("discarding unsupported source")
			continue
		}
		resolved = append(resolved, s)
	}

	var captions []*ovpapi.Caption
	if req.APICaptions {
		captions = classified.Playback.PlaybackCaptions
	}

	return assembleEntry(assembleParams{
		entry:     baseEntry,
		sources:   resolved,
		metadata:  classified.Metadata.Objects,
		captions:  captions,
		partnerID: p.session.PartnerID(),
		// Captions reuse the caller token even on the anonymous path.
		captionKS: plan.LiteralKS(),
		log:       logger,
	})
}
