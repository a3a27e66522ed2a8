// Package bucket sums travelled distance per transportation mode over
// contiguous calendar months or years and derives the CO2 of each period.
package bucket

import (
	"errors"
	"fmt"
	"time"

	"github.com/sw33tLie/carbontimeline/pkg/carbon"
	"github.com/sw33tLie/carbontimeline/pkg/timeline"
)

// ErrEmptyInput is returned by Bucketize when there is nothing to aggregate.
var ErrEmptyInput = errors.New("no travel activities to aggregate")

// TotalLabel labels the synthetic row returned by Buckets.Totals.
const TotalLabel = "total"

// Bucket holds the kilometers and kg CO2 of one period.
type Bucket struct {
	Label string

	AirKm  int
	RoadKm int
	RailKm int

	AirCO2  int
	RoadCO2 int
	RailCO2 int
}

// Km returns the distance summed for mode.
func (b Bucket) Km(mode carbon.Mode) int {
	switch mode {
	case carbon.Air:
		return b.AirKm
	case carbon.Road:
		return b.RoadKm
	case carbon.Rail:
		return b.RailKm
	}
	return 0
}

// CO2 returns the kg CO2 computed for mode.
func (b Bucket) CO2(mode carbon.Mode) int {
	switch mode {
	case carbon.Air:
		return b.AirCO2
	case carbon.Road:
		return b.RoadCO2
	case carbon.Rail:
		return b.RailCO2
	}
	return 0
}

func (b *Bucket) add(mode carbon.Mode, km int) {
	switch mode {
	case carbon.Air:
		b.AirKm += km
	case carbon.Road:
		b.RoadKm += km
	case carbon.Rail:
		b.RailKm += km
	}
}

func (b *Bucket) computeCO2() {
	b.AirCO2 = carbon.CO2Kg(b.AirKm, carbon.Air)
	b.RoadCO2 = carbon.CO2Kg(b.RoadKm, carbon.Road)
	b.RailCO2 = carbon.CO2Kg(b.RailKm, carbon.Rail)
}

// Buckets is an ordered set of buckets, oldest first.
type Buckets struct {
	Resolution Resolution

	order []*Bucket
	index map[string]*Bucket
}

func newBuckets(res Resolution) *Buckets {
	return &Buckets{Resolution: res, index: make(map[string]*Bucket)}
}

func (b *Buckets) insert(label string) {
	if _, ok := b.index[label]; ok {
		return
	}
	bk := &Bucket{Label: label}
	b.order = append(b.order, bk)
	b.index[label] = bk
}

// Len returns the number of periods.
func (b *Buckets) Len() int { return len(b.order) }

// All returns a copy of the buckets in chronological order.
func (b *Buckets) All() []Bucket {
	out := make([]Bucket, len(b.order))
	for i, bk := range b.order {
		out[i] = *bk
	}
	return out
}

func (b *Buckets) get(label string) (*Bucket, bool) {
	bk, ok := b.index[label]
	return bk, ok
}

// Totals sums every bucket. CO2 is summed per period rather than recomputed
// from the total distance, so the row matches the column totals.
func (b *Buckets) Totals() Bucket {
	t := Bucket{Label: TotalLabel}
	for _, bk := range b.order {
		t.AirKm += bk.AirKm
		t.RoadKm += bk.RoadKm
		t.RailKm += bk.RailKm
		t.AirCO2 += bk.AirCO2
		t.RoadCO2 += bk.RoadCO2
		t.RailCO2 += bk.RailCO2
	}
	return t
}

// Bucketize aggregates activities, which must be sorted by timestamp, into
// one bucket per period from the first activity's period to the last one's,
// including empty periods in between.
func Bucketize(activities []timeline.Activity, res Resolution) (*Buckets, error) {
	if len(activities) == 0 {
		return nil, ErrEmptyInput
	}
	if res != Month && res != Year {
		return nil, fmt.Errorf("invalid resolution %q", res)
	}

	first, last := activities[0].Time(), activities[len(activities)-1].Time()
	if first.After(last) {
		return nil, fmt.Errorf("activities not sorted: first at %s is after last at %s",
			first.Format(time.RFC3339), last.Format(time.RFC3339))
	}

	out := newBuckets(res)
	for cur := res.Floor(first); !cur.After(last); cur = res.Next(cur) {
		out.insert(res.Label(cur))
	}

	for _, a := range activities {
		label := res.Label(a.Time())
		bk, ok := out.get(label)
		if !ok {
			return nil, fmt.Errorf("activity at %s falls outside %s..%s (input not sorted?)",
				a.Time().Format(time.RFC3339), res.Label(first), res.Label(last))
		}
		bk.add(a.Mode, a.DistanceKm)
	}

	for _, bk := range out.order {
		bk.computeCO2()
	}
	return out, nil
}
