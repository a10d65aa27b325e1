package tool

import (
	"context"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// Archiver writes an application archive from an assembly plan
// Implementations decide how the entries reach the container; the
// assembly policy never depends on the mechanism
type Archiver interface {
	// Archive builds the output archive at outputPath
	// Returns domain.ErrToolNotFound if the backing tool is missing,
	// domain.ErrToolFailed if it ran and exited nonzero
	Archive(ctx context.Context, plan *domain.PackPlan, outputPath string) error
}

// Signer applies APK signatures
type Signer interface {
	// Sign signs the archive in place using the given keystore and scheme
	Sign(ctx context.Context, apkPath string, ks domain.Keystore, scheme domain.SignScheme) error
}

// Aligner performs 4-byte archive alignment
type Aligner interface {
	// Align writes an aligned copy of inputPath to outputPath
	Align(ctx context.Context, inputPath, outputPath string) error
}

// BytecodeConverter converts JVM bytecode (jar/class) to dex
type BytecodeConverter interface {
	// Convert produces outputDex from the given class/jar inputs
	Convert(ctx context.Context, inputs []string, outputDex string) error
}
