package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"znkr.io/tokendiff/diff"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch OLD_FILE NEW_FILE",
		Short: "Diff two files and diff them again whenever one of them changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			run := func() {
				start := time.Now()
				oldText, err := readFile(args[0])
				if err != nil {
					log.Printf("failed to diff: %v", err)
					return
				}
				newText, err := readFile(args[1])
				if err != nil {
					log.Printf("failed to diff: %v", err)
					return
				}
				res := diff.Diff(oldText, newText)
				if err := writeResult(cmd.OutOrStdout(), cfg, res); err != nil {
					log.Printf("failed to write result: %v", err)
					return
				}
				log.Printf("Diffed %s and %s (%v)", args[0], args[1], time.Since(start))
			}

			w, err := newFileWatcher(args...)
			if err != nil {
				return err
			}
			defer w.Close()

			run()
			log.Printf("Watching %s and %s, press Ctrl-C to stop", args[0], args[1])

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			err = w.run(ctx, func(string) { run() })
			if ctx.Err() != nil {
				fmt.Print("\r") // remove Ctrl-C output characters
				log.Printf("Received Ctrl-C, shutting down")
				return nil
			}
			return err
		},
	}
}

// fileWatcher reports changes to a fixed set of files. It watches the directories containing the
// files rather than the files themselves, editors often replace a file instead of writing to it.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	files   []string
}

func newFileWatcher(files ...string) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %v", err)
	}

	w := &fileWatcher{watcher: watcher}
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolving %s: %v", file, err)
		}
		w.files = append(w.files, abs)

		dir := filepath.Dir(abs)
		if slices.Contains(watcher.WatchList(), dir) {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("starting watch: %v", err)
		}
	}
	return w, nil
}

// run calls changed with the path of a watched file whenever that file is written or created,
// until ctx is done.
func (w *fileWatcher) run(ctx context.Context, changed func(file string)) error {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			// Absolutely no need to react to chmod.
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !slices.Contains(w.files, name) {
				continue
			}
			changed(name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}
