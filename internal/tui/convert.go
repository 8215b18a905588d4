// ABOUTME: Converts an engine.GeneratedPlaylist into the viewer's plain Snapshot format

package tui

import (
	"playlistcraft/internal/discovery"
)

// FromEntries builds a Snapshot from a generation's interleaved entry
// sequence, keeping the viewer's on-disk format free of any dependency on
// internal/engine itself.
func FromEntries(title, description string, trackCount, totalDuration int, lastOracleError string, lastDiscoveryErrors []string, entries []discovery.PlaylistEntry) Snapshot {
	views := make([]EntryView, 0, len(entries))

	for _, e := range entries {
		ev := EntryView{
			Section:         string(e.Section),
			IsDiscovery:     e.IsDiscovery,
			Explanation:     e.Explanation,
			TransitionScore: e.TransitionScore,
		}

		if e.IsDiscovery {
			ev.Title = e.Candidate.Title
			ev.Artist = e.Candidate.Artist
			ev.Album = e.Candidate.Album
		} else if e.Track != nil {
			ev.Title = e.Track.Title
			ev.Artist = e.Track.Artist
			ev.Album = e.Track.Album
		}

		for _, r := range e.Reasons {
			ev.Reasons = append(ev.Reasons, ReasonView{
				Kind:        string(r.Kind),
				Explanation: r.Explanation,
				Score:       r.Score,
			})
		}

		views = append(views, ev)
	}

	for i := range views {
		views[i].Position = i + 1
	}

	return Snapshot{
		Title:               title,
		Description:         description,
		TrackCount:          trackCount,
		TotalDuration:       totalDuration,
		LastOracleError:     lastOracleError,
		LastDiscoveryErrors: lastDiscoveryErrors,
		Entries:             views,
	}
}
