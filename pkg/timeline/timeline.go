// Package timeline extracts travel activities from Semantic Location History
// JSON files, the per-month files of a Google Takeout export.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sw33tLie/carbontimeline/internal/utils"
	"github.com/sw33tLie/carbontimeline/pkg/carbon"
)

// Activity is a travel segment reduced to what the CO2 computation needs.
type Activity struct {
	TimestampMs int64
	DistanceKm  int
	Mode        carbon.Mode
}

// Time returns the segment start in UTC.
func (a Activity) Time() time.Time {
	return time.UnixMilli(a.TimestampMs).UTC()
}

// ParseError records a file that could not be read or is not valid JSON.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result holds everything Extract found, including the files it skipped.
type Result struct {
	Activities []Activity
	Failed     []*ParseError
	FilesRead  int
}

// Err summarizes the skipped files, or returns nil when every file parsed.
func (r Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files could not be parsed (first: %w)", len(r.Failed), r.FilesRead, r.Failed[0])
}

// Extract reads every file and returns the recognized activities sorted by
// start time. Ties keep the order in which they were encountered.
func Extract(files []string) Result {
	var res Result
	for _, f := range files {
		res.FilesRead++
		acts, err := extractFile(f)
		if err != nil {
			utils.Log.Warnf("Skipping %s: %v", f, err)
			res.Failed = append(res.Failed, &ParseError{File: f, Err: err})
			continue
		}
		res.Activities = append(res.Activities, acts...)
	}

	sort.SliceStable(res.Activities, func(i, j int) bool {
		return res.Activities[i].TimestampMs < res.Activities[j].TimestampMs
	})
	return res
}

func extractFile(path string) ([]Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	var (
		acts     []Activity
		segments int
	)
	gjson.GetBytes(data, "timelineObjects").ForEach(func(_, obj gjson.Result) bool {
		seg := obj.Get("activitySegment")
		if !seg.Exists() {
			return true
		}
		segments++
		if a, ok := Normalize(seg); ok {
			acts = append(acts, a)
		}
		return true
	})

	utils.Log.Debugf("%s: kept %d of %d activity segments", path, len(acts), segments)
	return acts, nil
}

// Normalize turns one activitySegment object into an Activity. Segments
// without a non-negative distance, without a billable activity type or without a start
// timestamp are dropped.
func Normalize(seg gjson.Result) (Activity, bool) {
	ts, ok := startTimestampMs(seg.Get("duration"))
	if !ok {
		return Activity{}, false
	}

	dist := seg.Get("distance")
	if dist.Type != gjson.Number || dist.Num < 0 {
		return Activity{}, false
	}

	typ := seg.Get("activityType")
	if typ.Type != gjson.String {
		return Activity{}, false
	}
	mode := carbon.Classify(typ.Str)
	if mode == carbon.None {
		return Activity{}, false
	}

	return Activity{
		TimestampMs: ts,
		DistanceKm:  int(math.Floor(dist.Num / 1000)),
		Mode:        mode,
	}, true
}

// startTimestampMs reads duration.startTimestampMs, which exports write
// either as a number or as a numeric string. Newer exports only carry an
// RFC 3339 duration.startTimestamp.
func startTimestampMs(duration gjson.Result) (int64, bool) {
	ms := duration.Get("startTimestampMs")
	switch ms.Type {
	case gjson.Number:
		return ms.Int(), true
	case gjson.String:
		n, err := strconv.ParseInt(ms.Str, 10, 64)
		return n, err == nil
	}

	iso := duration.Get("startTimestamp")
	if iso.Type == gjson.String {
		t, err := time.Parse(time.RFC3339Nano, iso.Str)
		if err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}
