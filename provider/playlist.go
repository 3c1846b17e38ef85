package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/streamkit/ovp/internal/log"
	"github.com/streamkit/ovp/internal/ovpapi"
	"github.com/streamkit/ovp/internal/session"
	"github.com/streamkit/ovp/internal/transport"
	"github.com/streamkit/ovp/media"
)

// MediaAsset identifies one member of an explicit id-list playlist lookup.
type MediaAsset struct {
	ID          string
	ReferenceID string
}

// PlaylistRequest selects one of the two playlist entry points: a stored
// playlist id, or an explicit list of assets looked up one by one. Exactly
// one of PlaylistID and Assets must be set.
type PlaylistRequest struct {
	PlaylistID string
	Assets     []MediaAsset
}

// PlaylistProvider resolves playlists into lightweight entry stubs. No
// playback sources are resolved for members.
type PlaylistProvider struct {
	session  Session
	executor transport.Executor
	log      zerolog.Logger
}

// NewPlaylistProvider builds a provider around the caller-owned session.
func NewPlaylistProvider(sess Session, cfg Config) *PlaylistProvider {
	log.Configure(log.Config{Level: cfg.LogLevel})
	return &PlaylistProvider{
		session:  sess,
		executor: cfg.executor(),
		log:      log.WithComponent("playlist-provider"),
	}
}

// LoadPlaylist starts one resolution and returns its cancel handle. The
// callback is invoked exactly once.
func (p *PlaylistProvider) LoadPlaylist(ctx context.Context, req PlaylistRequest, callback func(*media.Playlist, error)) *Resolution {
	res := &Resolution{}

	if p.session == nil {
		res.deliverPlaylist(callback, nil, ErrMissingSessionInfo)
		return res
	}
	if req.PlaylistID == "" && len(req.Assets) == 0 {
		res.deliverPlaylist(callback, nil, fmt.Errorf("%w: playlist id or assets", ErrMissingIdentifier))
		return res
	}

	logger := p.log.With().
		Str(log.FieldRequestID, uuid.NewString()).
		Logger()

	session.Resolve(p.session, func(plan session.TokenPlan) {
		if req.PlaylistID != "" {
			p.startLoading(ctx, req.PlaylistID, plan, res, logger, callback)
			return
		}
		p.startLoadingByIDs(ctx, req.Assets, plan, res, logger, callback)
	})
	return res
}

func (p *PlaylistProvider) startLoading(ctx context.Context, playlistID string, plan session.TokenPlan, res *Resolution, logger zerolog.Logger, callback func(*media.Playlist, error)) {
	batch := ovpapi.NewMultiRequest(apiBaseURL(p.session.BaseURL()))
	if plan.Anonymous() {
		logger.Debug().Msg("no session token, resolving anonymously")
		batch.Add(ovpapi.NewStartWidgetSession(p.session.PartnerID()))
	}
	ks := plan.KS()

	getOp, err := ovpapi.PlaylistGet(ks, playlistID)
	if err != nil {
		res.deliverPlaylist(callback, nil, fmt.Errorf("%w: %v", ErrMissingIdentifier, err))
		return
	}
	execOp, err := ovpapi.PlaylistExecute(ks, playlistID)
	if err != nil {
		res.deliverPlaylist(callback, nil, fmt.Errorf("%w: %v", ErrMissingIdentifier, err))
		return
	}
	batch.Add(getOp, execOp)

	if err := batch.Validate(); err != nil {
		res.deliverPlaylist(callback, nil, fmt.Errorf("%w: %v", ErrAnonymousLoginUnavailable, err))
		return
	}

	p.executor.Send(ctx, batch, func(resp transport.Response) {
		playlist, err := p.interpretByID(resp, logger)
		res.deliverPlaylist(callback, playlist, err)
	})
}

func (p *PlaylistProvider) interpretByID(resp transport.Response, logger zerolog.Logger) (*media.Playlist, error) {
	objects, err := decodeBatch(resp)
	if err != nil {
		return nil, err
	}

	classified, apiErr := ovpapi.Correlate(objects)
	if apiErr != nil {
		logger.Debug().Str("code", apiErr.Code).Msg("service declared an error")
		return nil, &ServerError{Code: apiErr.Code, Message: apiErr.Message}
	}
	if classified.Playlist == nil {
		return nil, fmt.Errorf("%w: playlist header and items are required", ErrIncompleteResponse)
	}
	if len(classified.PlaylistItems) == 0 {
		return nil, fmt.Errorf("%w: playlist has no items", ErrInvalidResponse)
	}

	return &media.Playlist{
		ID:           classified.Playlist.ID,
		Name:         classified.Playlist.Name,
		ThumbnailURL: classified.Playlist.ThumbnailURL,
		Entries:      stubEntries(classified.PlaylistItems),
	}, nil
}

func (p *PlaylistProvider) startLoadingByIDs(ctx context.Context, assets []MediaAsset, plan session.TokenPlan, res *Resolution, logger zerolog.Logger, callback func(*media.Playlist, error)) {
	batch := ovpapi.NewMultiRequest(apiBaseURL(p.session.BaseURL()))
	if plan.Anonymous() {
		logger.Debug().Msg("no session token, resolving anonymously")
		batch.Add(ovpapi.NewStartWidgetSession(p.session.PartnerID()))
	}
	ks := plan.KS()

	for _, asset := range assets {
		op, err := ovpapi.NewBaseEntryList(ks, asset.ID, asset.ReferenceID)
		if err != nil {
			res.deliverPlaylist(callback, nil, fmt.Errorf("%w: %v", ErrMissingIdentifier, err))
			return
		}
		batch.Add(op)
	}

	if err := batch.Validate(); err != nil {
		res.deliverPlaylist(callback, nil, fmt.Errorf("%w: %v", ErrAnonymousLoginUnavailable, err))
		return
	}

	expected := len(assets)
	p.executor.Send(ctx, batch, func(resp transport.Response) {
		playlist, err := interpretByIDs(resp, expected)
		res.deliverPlaylist(callback, playlist, err)
	})
}

// interpretByIDs degrades gracefully: a member that correlated to a server
// error is already replaced by a placeholder stub, so one bad id never
// aborts the batch.
func interpretByIDs(resp transport.Response, expected int) (*media.Playlist, error) {
	objects, err := decodeBatch(resp)
	if err != nil {
		return nil, err
	}

	entries := ovpapi.CollectEntries(objects)
	if len(entries) < expected {
		return nil, fmt.Errorf("%w: got %d of %d entries", ErrIncompleteResponse, len(entries), expected)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidResponse)
	}

	return &media.Playlist{Entries: stubEntries(entries)}, nil
}

func decodeBatch(resp transport.Response) ([]ovpapi.Object, error) {
	if resp.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, resp.Err)
	}
	objects, err := ovpapi.ParseMulti(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return objects, nil
}

func stubEntries(items []*ovpapi.Entry) []media.Entry {
	entries := make([]media.Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, media.Entry{
			ID:           item.ID,
			Name:         item.Name,
			DurationMs:   item.MsDuration,
			ThumbnailURL: item.ThumbnailURL,
		})
	}
	return entries
}
