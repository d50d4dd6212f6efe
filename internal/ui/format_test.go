package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bamsammich/repoprep/internal/stats"
)

func TestFormatRate(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0 B/s"},
		{-1, "0 B/s"},
		{512, "512 B/s"},
		{1024, "1.00 KB/s"},
		{1.5 * 1024 * 1024, "1.50 MB/s"},
		{2.5 * 1024 * 1024 * 1024, "2.50 GB/s"},
		{100 * 1024, "100 KB/s"},
		{15 * 1024, "15.0 KB/s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRate(tt.input))
		})
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1000000, "1,000,000"},
		{14302, "14,302"},
		{-1000, "-1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0s"},
		{1400 * time.Millisecond, "1s"},
		{90 * time.Second, "1m 30s"},
		{3661 * time.Second, "1h 01m 01s"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.input))
		})
	}
}

func TestCompletionSummary(t *testing.T) {
	snap := stats.Snapshot{
		FilesCopied:  1204,
		ItemsSkipped: 37,
		DirsCreated:  88,
		BytesCopied:  2048,
		Elapsed:      2 * time.Second,
	}
	assert.Equal(t,
		"done ✓  copied 1,204  skipped 37  dirs 88  size 2.0 KiB  avg 1.00 KB/s  time 2s  errors 0",
		CompletionSummary(snap))

	snap.FilesVerified = 1200
	snap.FilesVerifyFailed = 4
	got := CompletionSummary(snap)
	assert.Contains(t, got, "done ✗")
	assert.Contains(t, got, "verified 1,200")
	assert.Contains(t, got, "errors 4")
}

func statsZero() stats.Snapshot { return stats.Snapshot{} }
