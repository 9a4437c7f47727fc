package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/jwalton/gchalk"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/albumart-downloader/internal/config"
	"github.com/handiism/albumart-downloader/internal/download"
	ioutils "github.com/handiism/albumart-downloader/internal/io"
)

// errCancelled is returned when the run is interrupted.
var errCancelled = errors.New("cancelled")

var rootCmd = &cobra.Command{
	Use:   "albumart-dl",
	Short: "Downloads cover art for a list of album links",
	Long: heredoc.Doc(`
		albumart-dl reads album page links from a file and saves the cover art of
		every album into a directory, one JPEG per album named after its title.

		Each saved image carries an identifier derived from its link, so albums
		that are already on disk are skipped without any network request.

		For interactive mode, use albumart-tui.
	`),
	Example: heredoc.Doc(`
		# Download covers for the links in ./links.txt into ./album_arts
		albumart-dl

		# Use another links file and output directory
		albumart-dl --links my-albums.txt --out covers

		# Show which albums would be downloaded
		albumart-dl --dry-run
	`),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("config", "", "config file (default is $HOME/.albumart.yaml)")
	flags.StringP("links", "l", "", "file with album links (overrides config)")
	flags.StringP("out", "o", "", "output directory (overrides config)")
	flags.BoolP("verbose", "v", false, "show verbose output")
	flags.Bool("progress", false, "show a progress bar while downloading")
	flags.Bool("dry-run", false, "fetch album pages without downloading art")
}

func run(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfgFile, _ := flags.GetString("config")
	linksFile, _ := flags.GetString("links")
	outDir, _ := flags.GetString("out")
	verbose, _ := flags.GetBool("verbose")
	showProgress, _ := flags.GetBool("progress")
	dryRun, _ := flags.GetBool("dry-run")

	logger := newLogger(verbose)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := zap.S()

	settings, err := config.Load(cfgFile)
	if err != nil {
		sugar.Errorf("Error loading config: %v", err)
		return err
	}
	if linksFile != "" {
		settings.LinksFile = linksFile
	}
	if outDir != "" {
		settings.DownloadsPath = outDir
	}

	links, err := ioutils.ReadLinks(settings.LinksFile, settings.LinkDelimiter)
	if err != nil {
		sugar.Errorf("Error reading links: %v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := download.NewManager(settings, logEvent)
	defer manager.Close()

	sugar.Infof("Saving album art into %s", settings.DownloadsPath)
	if err := manager.Initialize(ctx, links); err != nil {
		sugar.Errorf("Error initializing: %v", err)
		return err
	}
	if ctx.Err() != nil {
		sugar.Warn("Download cancelled")
		return errCancelled
	}

	if dryRun {
		for _, task := range manager.Tasks() {
			fmt.Printf("%s\t%s\n", task.Title, task.ArtURL)
		}
		fmt.Println(gchalk.Dim("[Dry run - not downloading]"))
		return nil
	}

	var done chan struct{}
	if showProgress {
		done = make(chan struct{})
		go reportProgress(manager, done)
	}
	err = manager.StartDownloads(ctx)
	if done != nil {
		done <- struct{}{}
		<-done
	}
	if err != nil {
		sugar.Errorf("Error during download: %v", err)
		return err
	}
	if ctx.Err() != nil {
		sugar.Warn("Download cancelled")
		return errCancelled
	}

	printSummary(manager.GetSummary())
	return nil
}

// logEvent forwards a progress event to the global logger.
func logEvent(event download.ProgressEvent) {
	sugar := zap.S()
	switch event.Level {
	case download.LevelVerbose:
		sugar.Debug(event.Message)
	case download.LevelWarning:
		sugar.Warn(event.Message)
	case download.LevelError:
		sugar.Error(event.Message)
	default:
		sugar.Info(event.Message)
	}
}

// reportProgress renders a progress bar on stderr until done is signalled,
// then acknowledges on the same channel.
func reportProgress(manager *download.Manager, done chan struct{}) {
	_, _, total := manager.GetProgress()
	bar := progressbar.NewOptions(int(total),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, finished, _ := manager.GetProgress()
			bar.Set(int(finished))
		case <-done:
			_, finished, _ := manager.GetProgress()
			bar.Set(int(finished))
			bar.Finish()
			done <- struct{}{}
			return
		}
	}
}

func printSummary(summary download.Summary) {
	line := fmt.Sprintf("Done: %d saved, %d failed, %d already downloaded (%.2f MB)",
		summary.Downloaded,
		summary.Failed,
		summary.AlreadyDownloaded,
		float64(summary.ReceivedBytes)/1024/1024,
	)
	if summary.Failed > 0 {
		fmt.Println(gchalk.Yellow(line))
	} else {
		fmt.Println(gchalk.Green(line))
	}
}
