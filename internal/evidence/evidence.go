package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Record is one append-only evidence log entry proving a control operated
// at a point in time. Records are never rewritten or deleted.
type Record struct {
	Seq        int    `json:"seq"`            // Monotonic sequence number, 1-based.
	ID         string `json:"id"`             // UUID assigned at append time.
	Timestamp  string `json:"ts"`             // RFC3339 with microseconds, UTC.
	ControlID  string `json:"control"`        // Control the event evidences, e.g. CC6.1.
	Event      string `json:"event"`          // Human-readable event description.
	Repository string `json:"repo,omitempty"` // Repository the event relates to.
	Actor      string `json:"actor,omitempty"`
	ActorUUID  string `json:"actor_uuid,omitempty"`
	ChangeRef  string `json:"ref,omitempty"` // Commit SHA, PR number, ticket ID.
}

// Log is an append-only JSONL evidence log. Appends from concurrent
// processes are serialized through an adjacent lock file.
type Log struct {
	path  string
	clock func() time.Time // Injectable clock.
}

// NewLog opens an evidence log at the given path. The file is created on
// first append.
func NewLog(path string) *Log {
	return NewLogWithClock(path, time.Now)
}

// NewLogWithClock is NewLog with an injectable clock for tests.
func NewLogWithClock(path string, clock func() time.Time) *Log {
	return &Log{path: path, clock: clock}
}

// Path returns the log file path.
func (l *Log) Path() string {
	return l.path
}

// Append assigns the next sequence number, an ID, and a generation timestamp,
// then writes the record as one JSON line. The sequence is computed from the
// persisted log under an exclusive lock, so sequential appends yield 1..N
// with no gaps or duplicates even across process restarts.
func (l *Log) Append(record Record) (Record, error) {
	unlock, err := acquireLock(l.path + ".lock")
	if err != nil {
		return Record{}, fmt.Errorf("locking evidence log: %w", err)
	}
	defer unlock()

	last, err := l.lastSeq()
	if err != nil {
		return Record{}, err
	}

	record.Seq = last + 1
	record.ID = uuid.New().String()
	record.Timestamp = l.clock().UTC().Format("2006-01-02T15:04:05.000000Z")

	data, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("encoding evidence record: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return Record{}, fmt.Errorf("opening evidence log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return Record{}, fmt.Errorf("writing evidence record: %w", err)
	}

	return record, nil
}

// Read returns all records in the log in file order, along with the count of
// malformed lines that were skipped. A missing log yields no records and no
// error.
func (l *Log) Read() ([]Record, int, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading evidence log: %w", err)
	}

	records, skipped := ParseRecords(data)
	return records, skipped, nil
}

// lastSeq returns the highest sequence number persisted in the log,
// or 0 for a missing or empty log.
func (l *Log) lastSeq() (int, error) {
	records, _, err := l.Read()
	if err != nil {
		return 0, err
	}

	last := 0
	for _, record := range records {
		if record.Seq > last {
			last = record.Seq
		}
	}
	return last, nil
}

// ParseRecords parses JSON Lines data into evidence records. Malformed lines
// are skipped; the count of skipped lines is returned alongside the records.
func ParseRecords(data []byte) ([]Record, int) {
	if len(data) == 0 {
		return nil, 0
	}

	var records []Record
	skipped := 0
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var record Record
			if err := json.Unmarshal(line, &record); err != nil {
				skipped++
				continue
			}
			records = append(records, record)
		}
	}

	return records, skipped
}
