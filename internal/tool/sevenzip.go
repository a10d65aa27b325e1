package tool

import (
	"context"
	"fmt"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// SevenZip packs the plan root with 7z
//
// 7z cannot honor per-entry compression modes; the built-in writer is
// the plan-faithful archiver, and 7z exists as the faster external
// option for trees that were not decoded by apktool.
type SevenZip struct {
	path   string
	level  int
	runner Runner
}

// NewSevenZip creates a 7z archiver with the given deflate level (0-9)
func NewSevenZip(path string, level int, runner Runner) *SevenZip {
	return &SevenZip{path: path, level: level, runner: runner}
}

// Archive implements the Archiver interface
func (s *SevenZip) Archive(ctx context.Context, plan *domain.PackPlan, outputPath string) error {
	args := []string{
		"a", "-tzip",
		fmt.Sprintf("-mx=%d", s.level),
		// Exclusions mirror the assembly policy
		"-x!META-INF",
		"-x!__MACOSX",
		"-xr!.*",
		outputPath,
		".",
	}

	return s.runner.Run(ctx, Command{
		Tool: "7z",
		Bin:  s.path,
		Args: args,
		Dir:  plan.Root,
	})
}
