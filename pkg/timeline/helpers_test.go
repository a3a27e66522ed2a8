package timeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// segment renders one timelineObjects entry. Empty typ or negative meters
// leave the field out.
func segment(ts string, meters int, typ string) string {
	ms := mustParse(ts).UnixMilli()
	fields := []string{fmt.Sprintf(`"duration": {"startTimestampMs": "%d", "endTimestampMs": "%d"}`, ms, ms+60000)}
	if meters >= 0 {
		fields = append(fields, fmt.Sprintf(`"distance": %d`, meters))
	}
	if typ != "" {
		fields = append(fields, fmt.Sprintf(`"activityType": %q`, typ))
	}
	return `{"activitySegment": {` + strings.Join(fields, ", ") + `}}`
}

func placeVisit() string {
	return `{"placeVisit": {"location": {"name": "Home"}}}`
}

func document(objects ...string) string {
	return `{"timelineObjects": [` + strings.Join(objects, ",\n") + `]}`
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func mustParse(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return t
}
