package engine

// music.go implements the music intent handler. Pausing keeps the current
// track so a later status query can still report what was on.

import (
	"fmt"
	"strings"
)

// volumeStep is the delta applied by volume up/down commands.
const volumeStep = 10

func (e *Engine) handleMusic(st *State, text string) *Result {
	if idx := strings.Index(text, "play"); idx >= 0 {
		// The track is whatever follows "play", minus the literal word
		// "music". "play music" alone falls back to the default playlist.
		track := strings.TrimSpace(strings.ReplaceAll(text[idx+len("play"):], "music", ""))
		if track == "" {
			track = "playlist"
		}
		st.Music.Playing = true
		st.Music.Track = track
		return &Result{
			Reply:   fmt.Sprintf("Playing %s at volume %d.", track, st.Music.Volume),
			Actions: []string{fmt.Sprintf("Started playing %q", track)},
		}
	}

	switch {
	case strings.Contains(text, "pause") || strings.Contains(text, "stop"):
		st.Music.Playing = false
		return &Result{
			Reply:   "Music paused.",
			Actions: []string{"Paused music"},
		}
	case strings.Contains(text, "skip"):
		return &Result{
			Reply:   "Skipping to the next track.",
			Actions: []string{"Skipped track"},
		}
	case strings.Contains(text, "volume up") || strings.Contains(text, "louder"):
		st.Music.Volume = clamp(st.Music.Volume+volumeStep, 0, 100)
		return &Result{
			Reply:   fmt.Sprintf("Volume up to %d.", st.Music.Volume),
			Actions: []string{fmt.Sprintf("Set music volume to %d", st.Music.Volume)},
		}
	case strings.Contains(text, "volume down") || strings.Contains(text, "quieter"):
		st.Music.Volume = clamp(st.Music.Volume-volumeStep, 0, 100)
		return &Result{
			Reply:   fmt.Sprintf("Volume down to %d.", st.Music.Volume),
			Actions: []string{fmt.Sprintf("Set music volume to %d", st.Music.Volume)},
		}
	case strings.Contains(text, "music status") || strings.Contains(text, "what's playing"):
		return &Result{Reply: musicSummary(st), Actions: []string{}}
	}

	return nil
}

// musicSummary renders the one-line music status.
func musicSummary(st *State) string {
	if !st.Music.Playing || st.Music.Track == "" {
		return "Nothing is currently playing."
	}
	return fmt.Sprintf("Now playing %q at volume %d.", st.Music.Track, st.Music.Volume)
}
