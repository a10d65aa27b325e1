package tool

import (
	"context"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// Apktool rebuilds an unpacked package directory with apktool.
// It is the primary archiver: apktool re-encodes decoded resources,
// so the assembly plan's root is handed over whole.
type Apktool struct {
	path   string
	java   string
	runner Runner
}

// NewApktool creates an apktool archiver
// path may be an apktool binary or an apktool .jar (run through java)
func NewApktool(path, java string, runner Runner) *Apktool {
	return &Apktool{path: path, java: java, runner: runner}
}

// Archive implements the Archiver interface
func (a *Apktool) Archive(ctx context.Context, plan *domain.PackPlan, outputPath string) error {
	bin, args := jarCommand(a.java, a.path, "b", plan.Root, "-o", outputPath, "--use-aapt2")
	return a.runner.Run(ctx, Command{
		Tool: "apktool",
		Bin:  bin,
		Args: args,
	})
}

// Decode unpacks an APK into outputDir (apktool d)
func (a *Apktool) Decode(ctx context.Context, apkPath, outputDir string) error {
	bin, args := jarCommand(a.java, a.path, "d", apkPath, "-o", outputDir, "-f")
	return a.runner.Run(ctx, Command{
		Tool: "apktool",
		Bin:  bin,
		Args: args,
	})
}
