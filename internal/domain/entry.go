package domain

// CompressionMode selects how an archive entry is written
type CompressionMode int

const (
	// Deflate compresses the entry (default for text and code resources)
	Deflate CompressionMode = iota
	// Store copies the entry verbatim (already-compressed media, files
	// whose offsets the Android runtime maps directly)
	Store
)

// String returns the string representation of the mode
func (m CompressionMode) String() string {
	switch m {
	case Store:
		return "store"
	case Deflate:
		return "deflate"
	default:
		return "unknown"
	}
}

// FileEntry describes one file destined for the output archive
// Immutable once computed by the assembly policy
type FileEntry struct {
	// SourcePath is the absolute filesystem path of the file
	SourcePath string

	// ArchiveName is the entry name inside the archive, relative to the
	// package root, always forward-slash separated
	ArchiveName string

	// Method is the compression mode for this entry
	Method CompressionMode

	// Size in bytes at plan time
	Size int64
}

// TraversalWarning records a directory entry that was skipped because it
// could not be read during the walk
type TraversalWarning struct {
	// Path is the relative path of the skipped entry
	Path string

	// Err is the underlying filesystem error
	Err error
}

// PackPlan is the ordered output of the assembly policy
type PackPlan struct {
	// Root is the absolute path of the unpacked package directory
	Root string

	// Entries in deterministic order (lexicographic by ArchiveName)
	Entries []FileEntry

	// Warnings collected during traversal; never fatal
	Warnings []TraversalWarning

	// Stats summarizes the plan
	Stats PlanStats
}

// PlanStats 打包計畫統計
type PlanStats struct {
	TotalFiles int
	Stored     int
	Deflated   int
	TotalBytes int64
}
