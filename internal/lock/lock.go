package lock

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LockSuffix is appended to the guarded output path to form the lock file name
const LockSuffix = ".lock"

// DefaultStaleTimeout bounds how long a lock from an unreachable host is honored
const DefaultStaleTimeout = 30 * time.Minute

// HolderInfo contains metadata about the lock holder
type HolderInfo struct {
	PID       int       `json:"pid"`
	Hostname  string    `json:"hostname"`
	StartTime time.Time `json:"start_time"`
	Output    string    `json:"output,omitempty"`
}

// OutputLock guards an output archive path so that two concurrent
// invocations cannot write the same file
type OutputLock struct {
	lockPath     string
	staleTimeout time.Duration
	info         *HolderInfo
}

// NewOutputLock creates a lock guarding outputPath. The lock file is
// created next to the output so it lives on the same filesystem.
func NewOutputLock(outputPath string) *OutputLock {
	return &OutputLock{
		lockPath:     outputPath + LockSuffix,
		staleTimeout: DefaultStaleTimeout,
	}
}

// SetStaleTimeout sets the duration after which a cross-host lock is considered stale
func (l *OutputLock) SetStaleTimeout(d time.Duration) {
	l.staleTimeout = d
}

// Acquire attempts to acquire the lock
// Returns error if lock is already held by another process
func (l *OutputLock) Acquire(output string) error {
	// Check for existing lock
	existingInfo, err := l.readHolderInfo()
	if err == nil {
		if l.isStale(existingInfo) {
			if err := os.Remove(l.lockPath); err != nil {
				return fmt.Errorf("failed to remove stale lock: %w", err)
			}
		} else {
			return &LockError{
				Holder: existingInfo,
				Reason: "output is being written by another process",
			}
		}
	}

	hostname, _ := os.Hostname()
	info := &HolderInfo{
		PID:       os.Getpid(),
		Hostname:  hostname,
		StartTime: time.Now(),
		Output:    output,
	}

	// Create lock file atomically using O_CREATE|O_EXCL
	file, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			// Another process acquired the lock between our check and create
			existingInfo, readErr := l.readHolderInfo()
			if readErr != nil {
				return fmt.Errorf("lock acquisition race condition: %w", err)
			}
			return &LockError{
				Holder: existingInfo,
				Reason: "lock acquired by another process during acquisition",
			}
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(info); err != nil {
		os.Remove(l.lockPath)
		return fmt.Errorf("failed to write lock info: %w", err)
	}

	l.info = info
	return nil
}

// Release releases the lock
func (l *OutputLock) Release() error {
	if l.info == nil {
		return nil // Not holding lock
	}

	// Verify we still own the lock before removing
	existingInfo, err := l.readHolderInfo()
	if err != nil {
		l.info = nil
		return nil // Lock file doesn't exist, consider it released
	}

	if !l.isHeldByThisInstance(existingInfo) {
		l.info = nil
		return fmt.Errorf("lock was stolen by another process")
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	l.info = nil
	return nil
}

// IsLocked checks if a lock is currently held
func (l *OutputLock) IsLocked() bool {
	info, err := l.readHolderInfo()
	if err != nil {
		return false
	}
	return !l.isStale(info)
}

// GetHolder returns information about the current lock holder
func (l *OutputLock) GetHolder() (*HolderInfo, error) {
	info, err := l.readHolderInfo()
	if err != nil {
		return nil, err
	}
	if l.isStale(info) {
		return nil, fmt.Errorf("lock is stale")
	}
	return info, nil
}

// ForceRelease forcibly removes the lock file
// Use with caution - only when certain the lock holder has crashed
func (l *OutputLock) ForceRelease() error {
	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to force remove lock: %w", err)
	}
	l.info = nil
	return nil
}

func (l *OutputLock) readHolderInfo() (*HolderInfo, error) {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return nil, err
	}

	var info HolderInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("invalid lock file format: %w", err)
	}

	return &info, nil
}

// isStale checks if a lock is stale (process dead)
// Note: we only consider a lock stale if the process is dead, not based
// on timeout alone. Timeout is only used as a fallback for cross-host
// scenarios where we can't check the process.
func (l *OutputLock) isStale(info *HolderInfo) bool {
	hostname, _ := os.Hostname()

	// Same host: check if process is still running
	if info.Hostname == hostname {
		return !processExists(info.PID)
	}

	// Different host: can't check process, use timeout as fallback
	return time.Since(info.StartTime) > l.staleTimeout
}

// isHeldByThisInstance checks if the lock is held by this specific OutputLock instance
func (l *OutputLock) isHeldByThisInstance(info *HolderInfo) bool {
	if l.info == nil {
		return false
	}
	hostname, _ := os.Hostname()
	return info.PID == os.Getpid() && info.Hostname == hostname &&
		l.info.StartTime.Equal(info.StartTime)
}

// LockError represents an error when lock cannot be acquired
type LockError struct {
	Holder *HolderInfo
	Reason string
}

func (e *LockError) Error() string {
	if e.Holder != nil {
		return fmt.Sprintf("cannot acquire lock: %s (held by PID %d on %s since %s)",
			e.Reason,
			e.Holder.PID,
			e.Holder.Hostname,
			e.Holder.StartTime.Format(time.RFC3339),
		)
	}
	return fmt.Sprintf("cannot acquire lock: %s", e.Reason)
}

// IsLockError checks if an error is a LockError
func IsLockError(err error) bool {
	_, ok := err.(*LockError)
	return ok
}
