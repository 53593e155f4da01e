package store

import (
	"fmt"
	"time"
)

var sqliteTimeFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// dbTime scans timestamps from both drivers: pgx yields time.Time, SQLite
// may yield text when the column type is not known to the driver (RETURNING).
type dbTime struct {
	t *time.Time
}

func (d dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d.t = time.Time{}
		return nil
	case time.Time:
		*d.t = v
		return nil
	case int64:
		*d.t = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (d dbTime) parse(s string) error {
	for _, layout := range sqliteTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			*d.t = t
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp format %q", s)
}
