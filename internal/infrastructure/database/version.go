package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Version is a SQLite library version.
type Version struct {
	// Text is the dotted form, e.g. "3.46.1".
	Text string

	// Number is the SQLITE_VERSION_NUMBER form, e.g. 3046001.
	Number int
}

// String returns the dotted form of the version.
func (v Version) String() string {
	return v.Text
}

// ParseVersion converts a dotted SQLite version into a Version.
func ParseVersion(text string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, fmt.Errorf("parsing sqlite version %q: unexpected format", text)
	}

	var nums [3]int
	for i := 0; i < len(nums) && i < len(parts); i++ {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("parsing sqlite version %q: bad component %q", text, parts[i])
		}
		nums[i] = n
	}

	return Version{
		Text:   strings.TrimSpace(text),
		Number: nums[0]*1_000_000 + nums[1]*1_000 + nums[2],
	}, nil
}

// queryLibVersion asks the engine for sqlite_version() on a throwaway
// in-memory connection. Nothing touches the filesystem.
func queryLibVersion(ctx context.Context) (Version, error) {
	sqlDB, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		return Version{}, fmt.Errorf("opening probe connection: %w", err)
	}
	defer sqlDB.Close() //nolint:errcheck // Probe connection

	var text string
	if err := sqlDB.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&text); err != nil {
		return Version{}, fmt.Errorf("querying sqlite version: %w", err)
	}
	return ParseVersion(text)
}
