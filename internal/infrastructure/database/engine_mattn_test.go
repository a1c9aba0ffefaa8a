//go:build !modernc && !ncruces

package database

import (
	"testing"
	"time"
)

func TestBuildDSN_Mattn(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "legacy plain path",
			cfg:  Config{Path: "/data/app.db", JournalMode: "WAL"},
			want: "/data/app.db",
		},
		{
			name: "read-only",
			cfg:  Config{Path: "/data/app.db", Mode: ModeReadOnly, URI: true, BusyTimeout: 2 * time.Second},
			want: "file:/data/app.db?mode=ro&_busy_timeout=2000",
		},
		{
			name: "tuned writable",
			cfg: Config{
				Path:        "/data/app.db",
				URI:         true,
				BusyTimeout: 5 * time.Second,
				JournalMode: "WAL",
				Synchronous: "NORMAL",
			},
			want: "file:/data/app.db?mode=rwc&_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL",
		},
		{
			name: "escapes query characters",
			cfg:  Config{Path: "/data/what?.db", Mode: ModeReadWrite, URI: true},
			want: "file:/data/what%3f.db?mode=rw&_busy_timeout=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildDSN(tt.cfg); got != tt.want {
				t.Errorf("buildDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
