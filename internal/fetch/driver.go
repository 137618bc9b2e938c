package fetch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/chesterbot/chester/internal/library"
	"github.com/chesterbot/chester/internal/report"
	"github.com/chesterbot/chester/internal/util"
)

// Downloader fetches a single track's audio into the audio directory
type Downloader interface {
	DownloadAudio(ctx context.Context, id string) error
	AudioPath(id string) string
}

// Driver walks the catalog and downloads every track whose audio file is
// absent. Tracks whose file already exists are skipped.
type Driver struct {
	store  *library.Store
	dl     Downloader
	jobs   int
	logger *report.EventLogger
}

// Config holds driver configuration
type Config struct {
	Store      *library.Store
	Downloader Downloader
	Jobs       int // Worker count (1 = sequential)
	Logger     *report.EventLogger
}

// New creates a new Driver
func New(cfg *Config) *Driver {
	if cfg.Jobs <= 0 {
		cfg.Jobs = 1
	}

	return &Driver{
		store:  cfg.Store,
		dl:     cfg.Downloader,
		jobs:   cfg.Jobs,
		logger: cfg.Logger,
	}
}

// Result represents a fetch pass over the catalog
type Result struct {
	Processed  int
	Fetched    int
	Skipped    int
	Failed     int
	BytesAdded int64
	Errors     []error
}

// Run fetches all missing audio files. Individual download failures are
// logged and counted but do not abort the pass.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	ids, err := d.store.TrackIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	if len(ids) == 0 {
		util.InfoLog("Catalog is empty, nothing to fetch")
		return &Result{}, nil
	}

	total := len(ids)
	util.InfoLog("Checking %d cataloged tracks with %d workers", total, d.jobs)

	result := &Result{
		Errors: make([]error, 0),
	}
	var errMu sync.Mutex

	// Counters for progress reporting
	var processed atomic.Int64
	var fetched atomic.Int64
	var skipped atomic.Int64
	var failed atomic.Int64
	var bytesAdded atomic.Int64

	var bar *progressbar.ProgressBar
	if util.IsTerminal(os.Stderr.Fd()) && !util.IsQuiet() {
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("fetching"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		// No TTY, fall back to periodic log lines
		progressCtx, cancelProgress := context.WithCancel(ctx)
		defer cancelProgress()

		go func() {
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-progressCtx.Done():
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						util.InfoLog("Fetching: %d/%d - fetched: %d, skipped: %d, failed: %d",
							p, total, fetched.Load(), skipped.Load(), failed.Load())
					}
				}
			}
		}()
	}

	// Create worker pool
	idsChan := make(chan string, d.jobs*2)
	doneChan := make(chan struct{})

	// Start workers
	for i := 0; i < d.jobs; i++ {
		go func() {
			for id := range idsChan {
				select {
				case <-ctx.Done():
					doneChan <- struct{}{}
					return
				default:
				}

				processed.Add(1)

				bytes, err := d.fetchOne(ctx, id)

				if err != nil {
					util.ErrorLog("Failed to fetch %s: %v", id, err)
					errMu.Lock()
					result.Errors = append(result.Errors, fmt.Errorf("%s: %w", id, err))
					errMu.Unlock()
					failed.Add(1)
				} else if bytes < 0 {
					// Negative bytes means the file was already there
					skipped.Add(1)
				} else {
					fetched.Add(1)
					bytesAdded.Add(bytes)
				}

				if bar != nil {
					bar.Add(1)
				}
			}
			doneChan <- struct{}{}
		}()
	}

	// Send IDs to workers
	go func() {
		defer close(idsChan)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case idsChan <- id:
			}
		}
	}()

	// Wait for all workers to finish
	for i := 0; i < d.jobs; i++ {
		<-doneChan
	}

	if bar != nil {
		bar.Finish()
	}

	result.Processed = int(processed.Load())
	result.Fetched = int(fetched.Load())
	result.Skipped = int(skipped.Load())
	result.Failed = int(failed.Load())
	result.BytesAdded = bytesAdded.Load()

	if err := ctx.Err(); err != nil {
		return result, err
	}

	util.SuccessLog("Fetch complete: %d checked, %d fetched, %d skipped, %d failed, %s added",
		result.Processed, result.Fetched, result.Skipped, result.Failed,
		humanize.IBytes(uint64(result.BytesAdded)))

	return result, nil
}

// fetchOne downloads a single track unless its file already exists.
// Returns bytes added, or -1 when the file was already present.
func (d *Driver) fetchOne(ctx context.Context, id string) (int64, error) {
	path := d.dl.AudioPath(id)

	if _, err := os.Stat(path); err == nil {
		util.DebugLog("Audio for %s already present, skipping", id)
		d.logger.LogSkip(id, path)
		return -1, nil
	}

	start := time.Now()
	err := d.dl.DownloadAudio(ctx, id)
	d.logger.LogFetch(id, path, time.Since(start), err)
	if err != nil {
		return 0, err
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return 0, nil
	}

	util.DebugLog("Fetched %s (%s)", id, humanize.IBytes(uint64(info.Size())))
	return info.Size(), nil
}
