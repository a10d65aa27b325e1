package assembly

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Ning0612/apkrepack/internal/domain"
)

const (
	// ManifestFileName marks a directory as a valid unpacked package root
	ManifestFileName = "AndroidManifest.xml"

	// ResourceTableName is the binary resource table; must be stored
	// uncompressed so the runtime can mmap it
	ResourceTableName = "resources.arsc"

	// signingMetaDir holds prior signature artifacts; carrying old
	// manifests into a rebuilt archive invalidates the new signature
	signingMetaDir = "META-INF"

	// macJunkDir is macOS resource-fork metadata left by Finder archives
	macJunkDir = "__MACOSX"
)

// storeExtensions are already-compressed formats that must not be
// deflated again, plus native libraries and dex files whose offsets
// the runtime relies on. Mirrors aapt's no-compress list.
var storeExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
	".wav": {}, ".mp2": {}, ".mp3": {}, ".ogg": {}, ".aac": {},
	".mpg": {}, ".mpeg": {}, ".mid": {}, ".midi": {}, ".smf": {},
	".jet": {}, ".rtttl": {}, ".imy": {}, ".xmf": {},
	".mp4": {}, ".m4a": {}, ".m4v": {}, ".3gp": {}, ".3gpp": {},
	".3g2": {}, ".3gpp2": {}, ".amr": {}, ".awb": {},
	".wma": {}, ".wmv": {}, ".webm": {}, ".mkv": {},
	".tflite": {}, ".so": {}, ".dex": {}, ".arsc": {},
}

// MethodFor returns the compression mode for an archive entry name.
// The manifest and the resource table are always stored, regardless of
// how the name is spelled; everything else is decided by extension.
func MethodFor(name string) domain.CompressionMode {
	base := baseName(name)
	if base == ManifestFileName || base == ResourceTableName {
		return domain.Store
	}
	if _, ok := storeExtensions[strings.ToLower(filepath.Ext(base))]; ok {
		return domain.Store
	}
	return domain.Deflate
}

// baseName is filepath.Base over slash-normalized names
func baseName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Assemble walks the unpacked package root and produces the ordered
// list of archive entries with their compression modes.
//
// The walk is pure beyond directory listing and stat calls: file
// contents are never opened. Output order is deterministic
// (lexicographic by archive entry name) so the same tree always
// produces the same archive layout.
//
// Excluded during traversal:
//   - any file or directory whose name begins with "."
//   - __MACOSX directories
//   - the top-level META-INF signing-metadata directory
//
// Unreadable entries are recorded as warnings and skipped; the walk
// continues. Zero surviving entries is reported as ErrEmptyTree.
func Assemble(root string) (*domain.PackPlan, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRootNotFound, root)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRootNotFound, absRoot)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotDirectory, absRoot)
	}

	// Manifest marker identifies a valid unpacked package
	manifest, err := os.Stat(filepath.Join(absRoot, ManifestFileName))
	if err != nil || manifest.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrManifestMissing, absRoot)
	}

	plan := &domain.PackPlan{
		Root:    absRoot,
		Entries: make([]domain.FileEntry, 0),
	}

	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			rel = p
		}
		name := filepath.ToSlash(rel)

		if err != nil {
			// Partial corruption must not block packaging of the rest
			plan.Warnings = append(plan.Warnings, domain.TraversalWarning{Path: name, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if p == absRoot {
			return nil
		}

		if d.IsDir() {
			if excludeDir(d.Name(), name) {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			plan.Warnings = append(plan.Warnings, domain.TraversalWarning{Path: name, Err: err})
			return nil
		}
		if !fi.Mode().IsRegular() {
			plan.Warnings = append(plan.Warnings, domain.TraversalWarning{
				Path: name,
				Err:  fmt.Errorf("not a regular file (mode %s)", fi.Mode()),
			})
			return nil
		}

		plan.Entries = append(plan.Entries, domain.FileEntry{
			SourcePath:  p,
			ArchiveName: name,
			Method:      MethodFor(name),
			Size:        fi.Size(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sortEntries(plan.Entries)
	calculateStats(plan)

	if len(plan.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyTree, absRoot)
	}

	return plan, nil
}

// excludeDir decides whether a directory subtree is skipped entirely
func excludeDir(base, rel string) bool {
	if strings.HasPrefix(base, ".") {
		return true
	}
	if base == macJunkDir {
		return true
	}
	// Only the top-level META-INF holds signature artifacts;
	// nested META-INF directories inside assets are legitimate content
	if rel == signingMetaDir {
		return true
	}
	return false
}

// sortEntries enforces deterministic archive layout across runs and
// across host path-separator conventions
func sortEntries(entries []domain.FileEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ArchiveName < entries[j].ArchiveName
	})
}

// calculateStats computes summary statistics for a plan
func calculateStats(plan *domain.PackPlan) {
	for _, e := range plan.Entries {
		plan.Stats.TotalFiles++
		plan.Stats.TotalBytes += e.Size
		switch e.Method {
		case domain.Store:
			plan.Stats.Stored++
		case domain.Deflate:
			plan.Stats.Deflated++
		}
	}
}
