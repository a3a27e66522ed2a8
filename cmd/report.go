package cmd

import (
	"fmt"
	"io"

	"github.com/sw33tLie/carbontimeline/internal/utils"
	"github.com/sw33tLie/carbontimeline/pkg/bucket"
	"github.com/sw33tLie/carbontimeline/pkg/report"
	"github.com/sw33tLie/carbontimeline/pkg/takeout"
	"github.com/sw33tLie/carbontimeline/pkg/timeline"
)

type reportOptions struct {
	Resolution bucket.Resolution
	Debug      bool
	Total      bool
}

// runReport extracts archivePath, and writes either the per-activity listing
// (debug) or the per-period CO2 report to out.
func runReport(out io.Writer, archivePath string, opts reportOptions) error {
	ws, err := takeout.Open(archivePath)
	if err != nil {
		return err
	}
	dir := ws.Dir
	defer func() {
		if err := ws.Close(); err != nil {
			utils.Log.Warnf("Could not remove %s: %v", dir, err)
		}
	}()

	files, err := ws.JSONFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		utils.Log.Warnf("No JSON files found in %s", archivePath)
	}

	res := timeline.Extract(files)
	if err := res.Err(); err != nil {
		utils.Log.Warn(err)
	}
	utils.Log.Infof("Found %d travel activities in %d files", len(res.Activities), res.FilesRead-len(res.Failed))

	w := report.NewWriter(out)
	if opts.Debug {
		return w.WriteActivities(res.Activities)
	}

	buckets, err := bucket.Bucketize(res.Activities, opts.Resolution)
	if err != nil {
		return fmt.Errorf("%s: %w", archivePath, err)
	}
	utils.Log.Infof("Aggregated into %d %s buckets", buckets.Len(), buckets.Resolution)
	return w.WriteBuckets(buckets, opts.Total)
}
