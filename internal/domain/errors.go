package domain

import "errors"

// Precondition errors - 打包前置條件錯誤
var (
	// ErrRootNotFound indicates the package root directory does not exist
	ErrRootNotFound = errors.New("package root not found")

	// ErrNotDirectory indicates the package root is not a directory
	ErrNotDirectory = errors.New("package root is not a directory")

	// ErrManifestMissing indicates AndroidManifest.xml is absent from the root
	ErrManifestMissing = errors.New("AndroidManifest.xml not found in package root")

	// ErrEmptyTree indicates traversal produced zero archive entries,
	// which always signals a mis-pointed root rather than a valid package
	ErrEmptyTree = errors.New("package tree produced no archive entries")
)

// Tool errors - 外部工具錯誤
var (
	// ErrToolNotFound indicates the external tool binary is missing or
	// not executable; callers may fall back to a secondary tool
	ErrToolNotFound = errors.New("tool not found")

	// ErrToolFailed indicates the tool ran and returned a nonzero exit
	// status; callers must NOT fall back on this error
	ErrToolFailed = errors.New("tool exited with error")

	// ErrKeystoreMissing indicates the keystore file or credentials are
	// not configured
	ErrKeystoreMissing = errors.New("keystore not configured")

	// ErrInvalidScheme indicates an unknown signing scheme
	ErrInvalidScheme = errors.New("invalid signing scheme")
)

// Config errors - 設定檔錯誤
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")
)
