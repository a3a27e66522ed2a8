package utils

import (
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(log.WarnLevel)

	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"warn":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
	}
	for in, want := range cases {
		if err := SetLogLevel(in); err != nil {
			t.Fatalf("SetLogLevel(%q): %v", in, err)
		}
		if got := Log.GetLevel(); got != want {
			t.Fatalf("SetLogLevel(%q): level %v, want %v", in, got, want)
		}
	}
}

func TestSetLogLevelRejectsUnknown(t *testing.T) {
	if err := SetLogLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
