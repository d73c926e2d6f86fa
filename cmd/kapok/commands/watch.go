package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// debounceWindow coalesces the event bursts editors produce on save.
const debounceWindow = 250 * time.Millisecond

// WatchCmd regenerates whenever the manifest changes.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the manifest changes",
	Long: `Run an initial generation, then watch the manifest file and
regenerate on every change until interrupted. A fresh generation cache is
used per rebuild, so edits always take effect.

Examples:
  kapok watch --manifest fakes.yaml --out build/generated`,
	RunE: runWatch,
}

func init() {
	addGenerateFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rebuild := func() {
		if err := generateOnce(ctx, log); err != nil {
			// Keep watching; the next edit may fix the manifest.
			fmt.Fprintln(os.Stderr, err)
		}
	}
	rebuild()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory, not the file: editors replace files on save
	// and a file watch dies with the old inode.
	dir := filepath.Dir(manifestPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info("watching manifest", zap.String("path", manifestPath))

	target := filepath.Clean(manifestPath)
	var debounce *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				log.Info("manifest changed, regenerating", zap.String("event", event.Op.String()))
				rebuild()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}
