// Package download provides the download orchestration logic for
// fetching album cover art.
//
// # Manager
//
// The Manager coordinates the entire process:
//
//  1. Scan the art directory for identifiers of covers already on disk
//  2. Drop links whose identifier was found
//  3. Fetch every remaining album page concurrently and collect download tasks
//  4. Download every collected cover concurrently
//  5. Tag each cover with its identifier and save it
//
// Steps 3 and 4 are separated by a barrier: no cover download starts before
// every album page has been handled.
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	defer manager.Close()
//
//	links, err := ioutils.ReadLinks(settings.LinksFile, settings.LinkDelimiter)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := manager.Initialize(ctx, links); err != nil {
//	    log.Fatal(err)
//	}
//	if err := manager.StartDownloads(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Failures
//
// A failure affects only its own link. Missing metadata, transport errors
// and write errors are reported through ProgressEvent and counted in the
// Summary; they never stop other downloads. Nothing is retried.
package download
