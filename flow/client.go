/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package flow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const streamFileName = "operations.jsonl"

// Client authors operation records for one device and appends them to a
// JSONL stream on disk. It is not safe for concurrent use; callers
// serialize access per workspace like every other writer.
type Client struct {
	fs      afero.Fs
	path    string
	author  string
	seq     uint64
	horizon map[string]uint64
	pending []Record
}

// NewClient opens the operation stream under dir for the given author,
// resuming the author's sequence numbering from whatever the stream
// already holds.
func NewClient(fs afero.Fs, dir, author string) (*Client, error) {
	c := &Client{
		fs:      fs,
		path:    filepath.Join(dir, streamFileName),
		author:  author,
		horizon: make(map[string]uint64),
	}
	records, err := c.readAll()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.Seq > c.horizon[rec.Author] {
			c.horizon[rec.Author] = rec.Seq
		}
	}
	c.seq = c.horizon[author]
	return c, nil
}

// NewOsClient opens a client on the real filesystem.
func NewOsClient(dir, author string) (*Client, error) {
	return NewClient(afero.NewOsFs(), dir, author)
}

// Path returns the stream file this client appends to.
func (c *Client) Path() string { return c.path }

// Author returns the device identity records are stamped with.
func (c *Client) Author() string { return c.author }

// Apply stamps op with this author's next sequence number and buffers the
// record for the next Flush. The returned record carries the author's
// horizon as of creation, so consumers can tell which operations this one
// had seen.
func (c *Client) Apply(op Operation) Record {
	c.seq++
	c.horizon[c.author] = c.seq
	rec := Record{
		ID:        uuid.New(),
		Author:    c.author,
		Seq:       c.seq,
		Timestamp: time.Now().UnixMilli(),
		Horizon:   cloneHorizon(c.horizon),
		Op:        op,
	}
	c.pending = append(c.pending, rec)
	return rec
}

// AppendAll applies the operations in order and returns their records.
func (c *Client) AppendAll(ops []Operation) []Record {
	records := make([]Record, 0, len(ops))
	for _, op := range ops {
		records = append(records, c.Apply(op))
	}
	return records
}

// Pending reports how many records await a Flush.
func (c *Client) Pending() int { return len(c.pending) }

// Flush appends the buffered records to the stream file. A failed append
// leaves previously flushed lines intact; a torn trailing line is skipped
// by readers.
func (c *Client) Flush() error {
	if len(c.pending) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, rec := range c.pending {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode operation record: %w", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if err := c.fs.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create flow directory: %w", err)
	}
	f, err := c.fs.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open operation stream %s: %w", c.path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append to operation stream %s: %w", c.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close operation stream %s: %w", c.path, err)
	}

	c.pending = c.pending[:0]
	return nil
}

// Records returns every record currently in the stream file, oldest first.
// Unflushed records are not included.
func (c *Client) Records() ([]Record, error) {
	return c.readAll()
}

func (c *Client) readAll() ([]Record, error) {
	exists, err := afero.Exists(c.fs, c.path)
	if err != nil {
		return nil, fmt.Errorf("stat operation stream %s: %w", c.path, err)
	}
	if !exists {
		return nil, nil
	}
	content, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return nil, fmt.Errorf("read operation stream %s: %w", c.path, err)
	}

	var records []Record
	for i, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
			slog.Warn("skipping invalid operation line", "path", c.path, "line", i+1, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func cloneHorizon(h map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(h))
	for author, seq := range h {
		out[author] = seq
	}
	return out
}
