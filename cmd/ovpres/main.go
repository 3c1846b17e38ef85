// Command ovpres resolves a media entry or playlist against an OVP server
// and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/streamkit/ovp/media"
	"github.com/streamkit/ovp/provider"
)

type fileConfig struct {
	Server  string `yaml:"server"`
	Partner int64  `yaml:"partner"`
	KS      string `yaml:"ks"`
}

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (server, partner, ks)")
		server     = flag.String("server", "", "OVP server base URL")
		partner    = flag.Int64("partner", 0, "partner id")
		ks         = flag.String("ks", "", "session token (empty for anonymous)")
		entryID    = flag.String("entry", "", "entry id to resolve")
		refID      = flag.String("ref", "", "entry reference id to resolve")
		playlistID = flag.String("playlist", "", "playlist id to resolve")
		ids        = flag.String("ids", "", "comma-separated entry ids to resolve as a playlist")
		captions   = flag.Bool("captions", false, "populate external captions")
		timeout    = flag.Duration("timeout", 30*time.Second, "resolution timeout")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := fileConfig{Server: *server, Partner: *partner, KS: *ks}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("parse config: %v", err)
		}
		if *server != "" {
			cfg.Server = *server
		}
		if *partner != 0 {
			cfg.Partner = *partner
		}
		if *ks != "" {
			cfg.KS = *ks
		}
	}

	if cfg.Server == "" || cfg.Partner == 0 {
		fmt.Println("Usage: ovpres -server <url> -partner <id> [-ks <token>] (-entry <id> | -ref <id> | -playlist <id> | -ids <id,id>)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := ""
	if *verbose {
		level = "debug"
	}
	sess := &provider.StaticSession{ServerURL: cfg.Server, Partner: cfg.Partner, KS: cfg.KS}
	pcfg := provider.Config{LogLevel: level}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch {
	case *entryID != "" || *refID != "":
		resolveEntry(ctx, sess, pcfg, *entryID, *refID, *captions)
	case *playlistID != "":
		resolvePlaylist(ctx, sess, pcfg, provider.PlaylistRequest{PlaylistID: *playlistID})
	case *ids != "":
		var assets []provider.MediaAsset
		for _, id := range strings.Split(*ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				assets = append(assets, provider.MediaAsset{ID: id})
			}
		}
		resolvePlaylist(ctx, sess, pcfg, provider.PlaylistRequest{Assets: assets})
	default:
		fmt.Println("one of -entry, -ref, -playlist or -ids is required")
		os.Exit(1)
	}
}

func resolveEntry(ctx context.Context, sess provider.Session, cfg provider.Config, entryID, refID string, captions bool) {
	p := provider.NewMediaProvider(sess, cfg)
	done := make(chan struct{})
	var (
		entry  *media.Entry
		resErr error
	)
	p.LoadMedia(ctx, provider.MediaRequest{
		EntryID:     entryID,
		ReferenceID: refID,
		APICaptions: captions,
	}, func(e *media.Entry, err error) {
		entry, resErr = e, err
		close(done)
	})
	<-done
	printResult(entry, resErr)
}

func resolvePlaylist(ctx context.Context, sess provider.Session, cfg provider.Config, req provider.PlaylistRequest) {
	p := provider.NewPlaylistProvider(sess, cfg)
	done := make(chan struct{})
	var (
		playlist *media.Playlist
		resErr   error
	)
	p.LoadPlaylist(ctx, req, func(pl *media.Playlist, err error) {
		playlist, resErr = pl, err
		close(done)
	})
	<-done
	printResult(playlist, resErr)
}

func printResult(v any, err error) {
	if err != nil {
		log.Fatalf("resolution failed: %v", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}
