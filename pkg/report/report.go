// Package report prints activities and buckets as comma-space separated text.
package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sw33tLie/carbontimeline/pkg/bucket"
	"github.com/sw33tLie/carbontimeline/pkg/carbon"
	"github.com/sw33tLie/carbontimeline/pkg/timeline"
)

const (
	Separator       = ", "
	TimestampLayout = "2006-01-02 15:04:05-0700"
)

var (
	activityHeader = []string{"ts", "epoch", "type", "distance"}
	bucketHeader   = []string{"date", "air_km", "road_km", "rail_km", "air_co2", "road_co2", "rail_co2"}
)

type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteActivities lists every activity, oldest first, for eyeballing odd data.
func (r *Writer) WriteActivities(acts []timeline.Activity) error {
	r.line(activityHeader...)
	for _, a := range acts {
		r.line(
			a.Time().Format(TimestampLayout),
			strconv.FormatInt(a.TimestampMs, 10),
			a.Mode.String(),
			strconv.Itoa(a.DistanceKm),
		)
	}
	return r.w.Flush()
}

// WriteBuckets prints one row per period, plus a total row if withTotal is set.
func (r *Writer) WriteBuckets(b *bucket.Buckets, withTotal bool) error {
	r.line(bucketHeader...)
	for _, bk := range b.All() {
		r.bucket(bk)
	}
	if withTotal {
		r.bucket(b.Totals())
	}
	return r.w.Flush()
}

// bucket writes the label, then km and kg CO2 per mode, in carbon.Modes order.
func (r *Writer) bucket(bk bucket.Bucket) {
	fields := []string{bk.Label}
	for _, m := range carbon.Modes {
		fields = append(fields, strconv.Itoa(bk.Km(m)))
	}
	for _, m := range carbon.Modes {
		fields = append(fields, strconv.Itoa(bk.CO2(m)))
	}
	r.line(fields...)
}

// line errors are sticky in bufio.Writer and surface on Flush.
func (r *Writer) line(fields ...string) {
	r.w.WriteString(strings.Join(fields, Separator))
	r.w.WriteByte('\n')
}
