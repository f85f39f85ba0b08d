package titles

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"official video annotation", "Song Name (Official Video)", "Song Name"},
		{"official music video", "Song Name (Official Music Video)", "Song Name"},
		{"bracketed official", "Song Name [Official Audio]", "Song Name"},
		{"lyrics", "Song Name (Lyrics)", "Song Name"},
		{"lyric singular", "Song Name [Lyric]", "Song Name"},
		{"audio", "Song Name (Audio)", "Song Name"},
		{"visualizer", "Song Name [Visualizer]", "Song Name"},
		{"live with detail", "Song Name (Live at Wembley)", "Song Name"},
		{"hd", "Song Name [HD]", "Song Name"},
		{"case insensitive", "Song Name (OFFICIAL VIDEO)", "Song Name"},
		{"multiple annotations", "Song Name (Official Video) [HD]", "Song Name"},
		{"interior whitespace collapsed", "Artist  -  Song (Audio)", "Artist - Song"},
		{"no annotations untouched", "Artist - Song", "Artist - Song"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParser_Guess(t *testing.T) {
	parser := NewParser(0)

	tests := []struct {
		name       string
		title      string
		channel    string
		wantArtist string
		wantTitle  string
	}{
		{
			name:       "hyphen separator with noise",
			title:      "Rick Astley - Never Gonna Give You Up (Official Video)",
			channel:    "Rick Astley",
			wantArtist: "Rick Astley",
			wantTitle:  "Never Gonna Give You Up",
		},
		{
			name:       "en dash separator",
			title:      "Tame Impala – The Less I Know The Better",
			wantArtist: "Tame Impala",
			wantTitle:  "The Less I Know The Better",
		},
		{
			name:       "em dash separator",
			title:      "Artist — Song",
			wantArtist: "Artist",
			wantTitle:  "Song",
		},
		{
			name:       "pipe separator",
			title:      "Artist | Song",
			wantArtist: "Artist",
			wantTitle:  "Song",
		},
		{
			name:       "colon separator",
			title:      "Artist: Song",
			wantArtist: "Artist",
			wantTitle:  "Song",
		},
		{
			name:       "hyphen wins over pipe",
			title:      "Artist - Song | Extra",
			wantArtist: "Artist",
			wantTitle:  "Song | Extra",
		},
		{
			name:       "split at first occurrence only",
			title:      "Artist - Song - Remix",
			wantArtist: "Artist",
			wantTitle:  "Song - Remix",
		},
		{
			name:       "channel as artist when similar",
			title:      "Daft Punk Around the World",
			channel:    "Daft Punk",
			wantArtist: "Daft Punk",
			wantTitle:  "Daft Punk Around the World",
		},
		{
			name:       "channel ignored when dissimilar",
			title:      "Bohemian Rhapsody",
			channel:    "RandomUploads4U",
			wantArtist: "",
			wantTitle:  "Bohemian Rhapsody",
		},
		{
			name:       "bare character fallback split",
			title:      "Artist-Song",
			wantArtist: "Artist",
			wantTitle:  "Song",
		},
		{
			name:       "no heuristic yields empty artist",
			title:      "Some Plain Video",
			wantArtist: "",
			wantTitle:  "Some Plain Video",
		},
		{
			name:       "empty title",
			title:      "",
			wantArtist: "",
			wantTitle:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Guess(tt.title, tt.channel)
			if got.Artist != tt.wantArtist || got.Title != tt.wantTitle {
				t.Errorf("Guess(%q, %q) = {%q, %q}, want {%q, %q}",
					tt.title, tt.channel, got.Artist, got.Title, tt.wantArtist, tt.wantTitle)
			}
		})
	}
}

func TestNewParser(t *testing.T) {
	t.Run("default threshold", func(t *testing.T) {
		p := NewParser(0)
		if p.ChannelThreshold != 60 {
			t.Errorf("ChannelThreshold = %v, want 60", p.ChannelThreshold)
		}
	})

	t.Run("custom threshold", func(t *testing.T) {
		p := NewParser(80)
		if p.ChannelThreshold != 80 {
			t.Errorf("ChannelThreshold = %v, want 80", p.ChannelThreshold)
		}
	})
}
