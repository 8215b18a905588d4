// ABOUTME: Entry point for playlistgen: flag parsing and routing into a single generation run
// ABOUTME: Mirrors the teacher's main.go shape (flag parsing, run() int, os.Exit(run()), signal-based cancellation)

// Package main is the CLI driver for playlistcraft. All decision logic
// lives in internal/engine and its collaborators; main only wires flags,
// env, and config into an Engine and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"playlistcraft/config"
	"playlistcraft/internal/catalogstore"
	"playlistcraft/internal/discovery"
	"playlistcraft/internal/engine"
	"playlistcraft/internal/oracle"
	"playlistcraft/internal/request"
	"playlistcraft/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.GetConfigPath(), "path to TOML config file")
	envPath := flag.String("env", ".env", "path to .env file for collaborator credentials")
	genres := flag.String("genres", "", "comma-separated requested genres")
	mood := flag.String("mood", "", "comma-separated requested moods")
	activity := flag.String("activity", "", "comma-separated requested activities")
	minutes := flag.Int("minutes", 0, "target length in minutes (mutually exclusive with -tracks)")
	trackCount := flag.Int("tracks", 20, "target length in tracks")
	surprise := flag.Float64("surprise", 0.2, "surprise factor in [0,1]")
	discoveryFlag := flag.Bool("discovery", false, "interleave externally-discovered tracks")
	dryRun := flag.Bool("dry-run", false, "print the plan without requiring live collaborators")
	snapshotPath := flag.String("snapshot", "", "write a viewer snapshot to this path after generating")
	viewPath := flag.String("tui", "", "skip generation and launch the viewer against an existing snapshot file")
	flag.Parse()

	if *viewPath != "" {
		if err := tui.Run(*viewPath); err != nil {
			log.Printf("viewer exited with error: %v", err)

			return 1
		}

		return 0
	}

	if err := godotenv.Load(*envPath); err != nil {
		log.Printf("no env file loaded at %s: %v", *envPath, err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
	}

	store := catalogstore.NewFileStore(cfg.CatalogRoot)

	refiner := buildRefiner(cfg)
	if *dryRun {
		refiner = oracle.NoOp{}
	}

	collab := buildDiscoveryCollaborator(*discoveryFlag)

	eng := engine.New(store, refiner, collab, cfg.LibraryRootID)

	length := request.Length{Type: request.LengthTracks, Value: *trackCount}
	if *minutes > 0 {
		length = request.Length{Type: request.LengthMinutes, Value: *minutes}
	}

	req := &request.PlaylistRequest{
		Genres:          splitCSV(*genres),
		Mood:            splitCSV(*mood),
		Activity:        splitCSV(*activity),
		Length:          length,
		Surprise:        *surprise,
		EnableDiscovery: *discoveryFlag && !*dryRun,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		cancel()
	}()

	playlist, err := eng.Generate(ctx, req)
	if err != nil {
		log.Printf("generation failed: %v", err)

		return 1
	}

	printPlaylist(playlist)

	if *snapshotPath != "" {
		if err := writeSnapshot(*snapshotPath, playlist); err != nil {
			log.Printf("warning: failed to write snapshot: %v", err)
		}
	}

	return 0
}

func writeSnapshot(path string, p *engine.GeneratedPlaylist) error {
	var oracleErr string
	if p.LastOracleError != nil {
		oracleErr = p.LastOracleError.Error()
	}

	discoveryErrs := make([]string, 0, len(p.LastDiscoveryErrors))
	for _, e := range p.LastDiscoveryErrors {
		discoveryErrs = append(discoveryErrs, e.Error())
	}

	snap := tui.FromEntries(p.Title, p.Description, p.Summary.TrackCount, p.TotalDuration, oracleErr, discoveryErrs, p.FinalEntries)

	return tui.WriteSnapshot(path, snap)
}

func buildRefiner(cfg config.EngineConfig) oracle.Refiner {
	baseURL := os.Getenv("PLAYLISTCRAFT_ORACLE_URL")
	if baseURL == "" {
		return oracle.NoOp{}
	}

	return oracle.NewHTTPClient(baseURL, os.Getenv("PLAYLISTCRAFT_ORACLE_API_KEY"), cfg.OracleTimeout())
}

func buildDiscoveryCollaborator(enabled bool) discovery.Collaborator {
	if !enabled {
		return nil
	}

	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")

	if clientID == "" || clientSecret == "" {
		log.Printf("discovery requested but SPOTIFY_CLIENT_ID/SPOTIFY_CLIENT_SECRET are unset, skipping")

		return nil
	}

	return discovery.NewSpotifyCollaborator(discovery.SpotifyAuthConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://accounts.spotify.com/api/token",
	})
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}

	var out []string

	start := 0

	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}

			start = i + 1
		}
	}

	return out
}

func printPlaylist(p *engine.GeneratedPlaylist) {
	fmt.Printf("%s\n%s\n\n", p.Title, p.Description)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "#\tSection\tArtist\tTitle\tTransition"); err != nil {
		log.Printf("warning: failed to write header: %v", err)
	}

	for _, t := range p.OrderedTracks {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n", t.Position+1, t.Section, t.Track.Artist, t.Track.Title, t.TransitionScore); err != nil {
			log.Printf("warning: failed to write track %d: %v", t.Position+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("warning: failed to flush output: %v", err)
	}

	fmt.Printf("\n%d tracks, %d seconds total\n", p.Summary.TrackCount, p.TotalDuration)

	if p.LastOracleError != nil {
		fmt.Printf("oracle unavailable this run: %v\n", p.LastOracleError)
	}

	if len(p.LastDiscoveryErrors) > 0 {
		fmt.Printf("%d discovery lookups failed and were skipped\n", len(p.LastDiscoveryErrors))
	}
}
