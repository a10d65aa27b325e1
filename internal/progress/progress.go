package progress

import (
	"fmt"
	"io"
	"sync"
)

// Reporter handles progress reporting for packaging operations
type Reporter interface {
	// SetTotal sets the total number of entries and bytes to write
	SetTotal(totalEntries int, totalBytes int64)
	// Start begins tracking a new archive entry
	Start(name string, totalBytes int64)
	// Update reports bytes written for the current entry
	Update(bytesWritten int64)
	// Complete marks the current entry as written
	Complete()
	// Error reports an error on the current entry
	Error(err error)
}

// Callback is a function that receives progress updates
type Callback func(update Update)

// Update represents a progress update
type Update struct {
	Type             UpdateType
	CurrentEntry     string
	CurrentBytes     int64
	CurrentTotal     int64
	EntriesCompleted int
	EntriesTotal     int
	BytesCompleted   int64
	BytesTotal       int64
	Error            error
}

// UpdateType indicates the type of progress update
type UpdateType int

const (
	UpdateStart UpdateType = iota
	UpdateProgress
	UpdateComplete
	UpdateError
)

// CallbackReporter implements Reporter with a callback function
type CallbackReporter struct {
	callback         Callback
	mu               sync.Mutex
	currentEntry     string
	currentTotal     int64
	entriesTotal     int
	bytesTotal       int64
	entriesCompleted int
	bytesCompleted   int64
}

// NewCallbackReporter creates a new CallbackReporter
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{
		callback: callback,
	}
}

// SetTotal sets the total number of entries and bytes
func (r *CallbackReporter) SetTotal(totalEntries int, totalBytes int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entriesTotal = totalEntries
	r.bytesTotal = totalBytes
}

// Start begins tracking a new archive entry
func (r *CallbackReporter) Start(name string, totalBytes int64) {
	r.mu.Lock()
	r.currentEntry = name
	r.currentTotal = totalBytes

	update := Update{
		Type:             UpdateStart,
		CurrentEntry:     name,
		CurrentTotal:     totalBytes,
		EntriesCompleted: r.entriesCompleted,
		EntriesTotal:     r.entriesTotal,
		BytesCompleted:   r.bytesCompleted,
		BytesTotal:       r.bytesTotal,
	}
	callback := r.callback
	r.mu.Unlock()

	// Call callback outside lock to prevent deadlock
	if callback != nil {
		callback(update)
	}
}

// Update reports bytes written for the current entry
func (r *CallbackReporter) Update(bytesWritten int64) {
	r.mu.Lock()
	update := Update{
		Type:             UpdateProgress,
		CurrentEntry:     r.currentEntry,
		CurrentBytes:     bytesWritten,
		CurrentTotal:     r.currentTotal,
		EntriesCompleted: r.entriesCompleted,
		EntriesTotal:     r.entriesTotal,
		BytesCompleted:   r.bytesCompleted + bytesWritten,
		BytesTotal:       r.bytesTotal,
	}
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// Complete marks the current entry as written
func (r *CallbackReporter) Complete() {
	r.mu.Lock()
	r.entriesCompleted++
	r.bytesCompleted += r.currentTotal

	update := Update{
		Type:             UpdateComplete,
		CurrentEntry:     r.currentEntry,
		CurrentBytes:     r.currentTotal,
		CurrentTotal:     r.currentTotal,
		EntriesCompleted: r.entriesCompleted,
		EntriesTotal:     r.entriesTotal,
		BytesCompleted:   r.bytesCompleted,
		BytesTotal:       r.bytesTotal,
	}
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// Error reports an error on the current entry
func (r *CallbackReporter) Error(err error) {
	r.mu.Lock()
	update := Update{
		Type:             UpdateError,
		CurrentEntry:     r.currentEntry,
		EntriesCompleted: r.entriesCompleted,
		EntriesTotal:     r.entriesTotal,
		BytesCompleted:   r.bytesCompleted,
		BytesTotal:       r.bytesTotal,
		Error:            err,
	}
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// Writer wraps an io.Writer to track write progress
type Writer struct {
	writer   io.Writer
	reporter Reporter
	written  int64
}

// NewWriter creates a new progress-tracking writer
func NewWriter(w io.Writer, reporter Reporter) *Writer {
	return &Writer{
		writer:   w,
		reporter: reporter,
	}
}

// Write implements io.Writer
func (pw *Writer) Write(p []byte) (n int, err error) {
	n, err = pw.writer.Write(p)
	if n > 0 {
		pw.written += int64(n)
		if pw.reporter != nil {
			pw.reporter.Update(pw.written)
		}
	}
	return n, err
}

// NullReporter is a no-op reporter
type NullReporter struct{}

func (NullReporter) SetTotal(totalEntries int, totalBytes int64) {}
func (NullReporter) Start(name string, totalBytes int64)        {}
func (NullReporter) Update(bytesWritten int64)                  {}
func (NullReporter) Complete()                                  {}
func (NullReporter) Error(err error)                            {}

// FormatBytes formats bytes into human-readable string
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
