package doublons

import (
	"sync"
	"time"
)

// FileRecord is a regular file found during the walk.
type FileRecord struct {
	// Path is the file path, rooted at the walked directory as given.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Class is a group of byte-identical files.
type Class struct {
	// Paths lists the members, anchor first, then matches in discovery order.
	Paths []string `json:"paths"`
	// Size is the size in bytes shared by every member.
	Size int64 `json:"size"`
	// SamePermissions reports whether every member's permission bits equal the anchor's.
	SamePermissions bool `json:"same_permissions"`
}

// Terminator returns "=" when all members share permissions, "*" otherwise.
func (c Class) Terminator() string {
	if c.SamePermissions {
		return "="
	}

	return "*"
}

// Reclaimable is the number of bytes held by all members but one.
func (c Class) Reclaimable() int64 {
	return c.Size * int64(len(c.Paths)-1)
}

// Report holds the result of a duplicate search.
type Report struct {
	// Root is the directory that was scanned.
	Root string `json:"root"`
	// Classes are the duplicate classes, in ascending size order.
	Classes []Class `json:"classes"`
	// FileCount is the number of regular files scanned.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of all scanned files.
	TotalBytes int64 `json:"total_bytes"`
	// Elapsed is the total time taken.
	Elapsed time.Duration `json:"elapsed"`
}

// DuplicateFiles is the number of files that are copies of an anchor.
func (r *Report) DuplicateFiles() int {
	n := 0
	for _, c := range r.Classes {
		n += len(c.Paths) - 1
	}

	return n
}

// Reclaimable is the number of bytes held by duplicate copies.
func (r *Report) Reclaimable() int64 {
	var n int64
	for _, c := range r.Classes {
		n += c.Reclaimable()
	}

	return n
}

// Options configures a duplicate search.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Extensions to include (empty = all); a '!' prefix excludes.
	Extensions []string
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// BlockSize is the comparison block size (0 = DefaultBlockSize).
	BlockSize int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// root returns the directory to scan, defaulting to the current directory.
// The path is kept exactly as given so records carry the caller's spelling.
func (o Options) root() string {
	if o.Path == "" {
		return "."
	}

	return o.Path
}

// collector gathers records from concurrent fastwalk callbacks using a mutex.
type collector struct {
	mu         sync.Mutex
	records    []FileRecord
	fileCount  int64
	totalBytes int64
}

func newCollector() *collector {
	return &collector{records: make([]FileRecord, 0, 128)}
}

// add records a regular file. fastwalk calls back from several goroutines.
func (c *collector) add(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = append(c.records, FileRecord{Path: path, Size: size})
	c.fileCount++
	c.totalBytes += size
}

// progress returns the running totals.
func (c *collector) progress() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

// finalize hands over the collected records.
func (c *collector) finalize() []FileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	records := c.records
	c.records = nil

	return records
}
