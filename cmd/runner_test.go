package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/likesync/internal/shared"
	"github.com/desertthunder/likesync/internal/tasks"
	tu "github.com/desertthunder/likesync/internal/testing"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			spotify := &tu.MockCatalog{}
			youtube := &tu.MockSource{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Spotify: spotify,
				YouTube: youtube,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.spotify != spotify {
				t.Error("expected spotify to be set")
			}
			if runner.youtube != youtube {
				t.Error("expected youtube to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlainln", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		err := runner.writePlainln("done: %d", 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if output.String() != "\ndone: 3\n" {
			t.Errorf("expected padded line, got %q", output.String())
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Fatal("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "auth", "sync", "spotify", "youtube"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})
}

func TestRunOpts(t *testing.T) {
	runWith := func(t *testing.T, runner *Runner, args ...string) tasks.RunOpts {
		t.Helper()

		var opts tasks.RunOpts
		cmd := &cli.Command{
			Name: "run",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "playlist", Aliases: []string{"p"}},
				&cli.IntFlag{Name: "max-results"},
				&cli.IntFlag{Name: "batch-size"},
				&cli.BoolFlag{Name: "dry-run"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				opts = runner.runOpts(cmd)
				return nil
			},
		}

		if err := cmd.Run(context.Background(), append([]string{"run"}, args...)); err != nil {
			t.Fatalf("failed to parse flags: %v", err)
		}

		return opts
	}

	t.Run("defaults come from config", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Sync.Playlist = "Config Playlist"
		config.Sync.MaxResults = 150
		config.Sync.BatchSize = 40

		runner := NewRunner(RunnerOpts{Config: config})
		opts := runWith(t, runner)

		if opts.Playlist != "Config Playlist" {
			t.Errorf("expected config playlist, got %q", opts.Playlist)
		}
		if opts.MaxResults != 150 {
			t.Errorf("expected max results 150, got %d", opts.MaxResults)
		}
		if opts.BatchSize != 40 {
			t.Errorf("expected batch size 40, got %d", opts.BatchSize)
		}
		if opts.DryRun {
			t.Error("expected dry run to default to false")
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Sync.Playlist = "Config Playlist"

		runner := NewRunner(RunnerOpts{Config: config})
		opts := runWith(t, runner, "--playlist", "Flag Playlist", "--max-results", "25", "--batch-size", "10", "--dry-run")

		if opts.Playlist != "Flag Playlist" {
			t.Errorf("expected flag playlist, got %q", opts.Playlist)
		}
		if opts.MaxResults != 25 {
			t.Errorf("expected max results 25, got %d", opts.MaxResults)
		}
		if opts.BatchSize != 10 {
			t.Errorf("expected batch size 10, got %d", opts.BatchSize)
		}
		if !opts.DryRun {
			t.Error("expected dry run to be enabled")
		}
	})

	t.Run("dry run from config sticks without flag", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Sync.DryRun = true

		runner := NewRunner(RunnerOpts{Config: config})
		opts := runWith(t, runner)

		if !opts.DryRun {
			t.Error("expected config dry run to carry over")
		}
	})
}
