package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks copy counters. Counters only grow; any goroutine may take
// a Snapshot while the engine is writing.
type Collector struct {
	filesCopied       atomic.Int64
	itemsSkipped      atomic.Int64
	dirsCreated       atomic.Int64
	bytesCopied       atomic.Int64
	filesExcluded     atomic.Int64
	dirsExcluded      atomic.Int64
	symlinksSkipped   atomic.Int64
	entriesFailed     atomic.Int64
	filesVerified     atomic.Int64
	filesVerifyFailed atomic.Int64
	startTime         time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesCopied       int64
	ItemsSkipped      int64 // every entry not reproduced, for any reason
	DirsCreated       int64
	BytesCopied       int64
	FilesExcluded     int64 // files matched by a rule
	DirsExcluded      int64
	SymlinksSkipped   int64
	EntriesFailed     int64 // entries that errored during processing
	FilesVerified     int64
	FilesVerifyFailed int64
	Elapsed           time.Duration
}

func (c *Collector) AddFilesCopied(n int64)       { c.filesCopied.Add(n) }
func (c *Collector) AddItemsSkipped(n int64)      { c.itemsSkipped.Add(n) }
func (c *Collector) AddDirsCreated(n int64)       { c.dirsCreated.Add(n) }
func (c *Collector) AddBytesCopied(n int64)       { c.bytesCopied.Add(n) }
func (c *Collector) AddFilesExcluded(n int64)     { c.filesExcluded.Add(n) }
func (c *Collector) AddDirsExcluded(n int64)      { c.dirsExcluded.Add(n) }
func (c *Collector) AddSymlinksSkipped(n int64)   { c.symlinksSkipped.Add(n) }
func (c *Collector) AddEntriesFailed(n int64)     { c.entriesFailed.Add(n) }
func (c *Collector) AddFilesVerified(n int64)     { c.filesVerified.Add(n) }
func (c *Collector) AddFilesVerifyFailed(n int64) { c.filesVerifyFailed.Add(n) }

// FilesCopied returns the current copied-file count.
func (c *Collector) FilesCopied() int64 { return c.filesCopied.Load() }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesCopied:       c.filesCopied.Load(),
		ItemsSkipped:      c.itemsSkipped.Load(),
		DirsCreated:       c.dirsCreated.Load(),
		BytesCopied:       c.bytesCopied.Load(),
		FilesExcluded:     c.filesExcluded.Load(),
		DirsExcluded:      c.dirsExcluded.Load(),
		SymlinksSkipped:   c.symlinksSkipped.Load(),
		EntriesFailed:     c.entriesFailed.Load(),
		FilesVerified:     c.filesVerified.Load(),
		FilesVerifyFailed: c.filesVerifyFailed.Load(),
		Elapsed:           c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	if c.startTime.IsZero() {
		return 0
	}
	return time.Since(c.startTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"copied=%d skipped=%d dirs=%d bytes=%d excluded=%d failed=%d",
		s.FilesCopied, s.ItemsSkipped, s.DirsCreated,
		s.BytesCopied, s.FilesExcluded+s.DirsExcluded+s.SymlinksSkipped, s.EntriesFailed,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
