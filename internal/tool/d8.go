package tool

import (
	"context"
	"os"
	"path/filepath"
)

// D8 converts JVM bytecode to dex with the SDK d8 tool
type D8 struct {
	path       string
	androidJar string
	runner     Runner
}

// NewD8 creates a d8-backed converter
// androidJar is the boot classpath; empty disables desugaring context
func NewD8(path, androidJar string, runner Runner) *D8 {
	return &D8{path: path, androidJar: androidJar, runner: runner}
}

// Convert implements the BytecodeConverter interface
// d8 always names its output classes.dex inside the output directory,
// so the result is moved when the caller asked for a different name
func (d *D8) Convert(ctx context.Context, inputs []string, outputDex string) error {
	outDir := filepath.Dir(outputDex)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	args := []string{"--release"}
	if d.androidJar != "" {
		args = append(args, "--lib", d.androidJar)
	}
	args = append(args, "--output", outDir)
	args = append(args, inputs...)

	if err := d.runner.Run(ctx, Command{
		Tool: "d8",
		Bin:  d.path,
		Args: args,
	}); err != nil {
		return err
	}

	produced := filepath.Join(outDir, "classes.dex")
	if filepath.Clean(outputDex) != produced {
		return os.Rename(produced, outputDex)
	}
	return nil
}
