package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/albumart-downloader/internal/artwork"
	"github.com/handiism/albumart-downloader/internal/catalog"
	"github.com/handiism/albumart-downloader/internal/config"
	"github.com/handiism/albumart-downloader/internal/http"
	ioutils "github.com/handiism/albumart-downloader/internal/io"
	"github.com/handiism/albumart-downloader/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Summary reports what a run did.
type Summary struct {
	Links             int
	AlreadyDownloaded int
	Scheduled         int
	Downloaded        int
	Failed            int
	ReceivedBytes     int64
}

// Manager coordinates album art downloads.
//
// A run has two phases separated by a barrier. Initialize fetches every
// pending album page concurrently and collects one DownloadTask per usable
// page. StartDownloads then downloads every collected task concurrently.
// No task starts before all pages have been processed.
type Manager struct {
	settings *config.Settings
	pages    *http.Client
	art      *http.ArtClient
	parser   *catalog.Parser
	tagger   *artwork.Tagger
	fetcher  *Fetcher

	links   []model.Link
	pending []model.Link
	tasks   []*model.DownloadTask
	mu      sync.Mutex

	failed        int32
	downloaded    int32
	finished      int32
	receivedBytes int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager and its connection pools.
// Call Close once the run is over to release them.
//
// onProgress is called from many goroutines at once and must be safe for
// concurrent use.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	opts := []http.Option{
		http.WithUserAgent(settings.UserAgent),
		http.WithTimeout(settings.Timeout()),
	}
	art := http.NewArtClient(opts...)
	tagger := artwork.NewTagger()

	return &Manager{
		settings:   settings,
		pages:      http.NewClient(opts...),
		art:        art,
		parser:     catalog.NewParser(),
		tagger:     tagger,
		fetcher:    NewFetcher(art, tagger, settings.DownloadsPath),
		onProgress: onProgress,
	}
}

// Close releases the page and art connection pools.
func (m *Manager) Close() {
	m.pages.Close()
	m.art.Close()
}

// Run performs Initialize followed by StartDownloads.
func (m *Manager) Run(ctx context.Context, links []model.Link) error {
	if err := m.Initialize(ctx, links); err != nil {
		return err
	}
	return m.StartDownloads(ctx)
}

// Initialize filters out already downloaded albums and fetches the page of
// every remaining link, collecting the download tasks.
//
// Per-link failures are reported as progress events. An error is returned
// only if the art directory cannot be created or listed.
func (m *Manager) Initialize(ctx context.Context, links []model.Link) error {
	m.links = links

	if err := ioutils.EnsureDir(m.settings.DownloadsPath); err != nil {
		return fmt.Errorf("creating %s: %w", m.settings.DownloadsPath, err)
	}

	downloaded, err := m.tagger.ScanExisting(m.settings.DownloadsPath)
	if err != nil {
		var skipped *multierror.Error
		if !errors.As(err, &skipped) {
			return fmt.Errorf("scanning %s: %w", m.settings.DownloadsPath, err)
		}
		for _, fileErr := range skipped.Errors {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Ignoring untagged file %v", fileErr), Level: LevelVerbose})
		}
	}

	m.pending = model.FilterPending(links, downloaded)
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("%d link(s), %d already downloaded", len(links), len(links)-len(m.pending)),
		Level:   LevelInfo,
	})

	var g errgroup.Group
	for _, link := range m.pending {
		link := link
		g.Go(func() error {
			m.processLink(ctx, link)
			return nil // Continue with other links
		})
	}
	return g.Wait()
}

// StartDownloads downloads every task collected by Initialize.
func (m *Manager) StartDownloads(ctx context.Context) error {
	var g errgroup.Group
	for _, task := range m.Tasks() {
		task := task
		g.Go(func() error {
			m.downloadTask(ctx, task)
			return nil // Continue with other tasks
		})
	}
	return g.Wait()
}

// Tasks returns the download tasks collected so far.
func (m *Manager) Tasks() []*model.DownloadTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*model.DownloadTask, len(m.tasks))
	copy(tasks, m.tasks)
	return tasks
}

// GetAlbumNames returns the titles of all scheduled albums.
func (m *Manager) GetAlbumNames() []string {
	tasks := m.Tasks()
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Title
	}
	return names
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received int64, filesFinished, filesTotal int32) {
	m.mu.Lock()
	total := int32(len(m.tasks))
	m.mu.Unlock()

	return atomic.LoadInt64(&m.receivedBytes), atomic.LoadInt32(&m.finished), total
}

// GetSummary returns the counters of the run so far.
func (m *Manager) GetSummary() Summary {
	m.mu.Lock()
	scheduled := len(m.tasks)
	m.mu.Unlock()

	return Summary{
		Links:             len(m.links),
		AlreadyDownloaded: len(m.links) - len(m.pending),
		Scheduled:         scheduled,
		Downloaded:        int(atomic.LoadInt32(&m.downloaded)),
		Failed:            int(atomic.LoadInt32(&m.failed)),
		ReceivedBytes:     atomic.LoadInt64(&m.receivedBytes),
	}
}

func (m *Manager) processLink(ctx context.Context, link model.Link) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Fetching album page: %s", link), Level: LevelVerbose})

	page, err := m.pages.Get(ctx, link.String())
	if err != nil {
		atomic.AddInt32(&m.failed, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error fetching %s: %v", link, err), Level: LevelError})
		return
	}

	meta, err := m.parser.ParseAlbumPage(page)
	switch {
	case errors.Is(err, catalog.ErrNoTitle):
		atomic.AddInt32(&m.failed, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("No album title for %s", link), Level: LevelWarning})
		return
	case errors.Is(err, catalog.ErrNoArt):
		atomic.AddInt32(&m.failed, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("No album art link for %s", link), Level: LevelWarning})
		return
	case err != nil:
		atomic.AddInt32(&m.failed, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error parsing %s: %v", link, err), Level: LevelError})
		return
	}

	task := model.NewDownloadTask(link, meta)
	m.mu.Lock()
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloading image for %s", task.Title), Level: LevelInfo})
}

func (m *Manager) downloadTask(ctx context.Context, task *model.DownloadTask) {
	defer atomic.AddInt32(&m.finished, 1)

	data, err := m.fetcher.Fetch(ctx, task.ArtURL)
	if err != nil {
		atomic.AddInt32(&m.failed, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading art for %s (%s): %v", task.Title, task.Link, err), Level: LevelError})
		return
	}
	atomic.AddInt64(&m.receivedBytes, int64(len(data)))

	path, info, err := m.fetcher.Store(data, task.Title, task.Identifier)
	if err != nil {
		atomic.AddInt32(&m.failed, 1)
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error saving art for %s (%s): %v", task.Title, task.Link, err), Level: LevelError})
		return
	}

	atomic.AddInt32(&m.downloaded, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s (%dx%d)", path, info.Width, info.Height), Level: LevelSuccess})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
