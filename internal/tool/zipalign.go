package tool

import "context"

// Zipalign aligns archive entries to 4-byte boundaries so the runtime
// can mmap stored entries directly
type Zipalign struct {
	path   string
	runner Runner
}

// NewZipalign creates a zipalign-backed aligner
func NewZipalign(path string, runner Runner) *Zipalign {
	return &Zipalign{path: path, runner: runner}
}

// Align implements the Aligner interface
func (z *Zipalign) Align(ctx context.Context, inputPath, outputPath string) error {
	return z.runner.Run(ctx, Command{
		Tool: "zipalign",
		Bin:  z.path,
		Args: []string{"-f", "4", inputPath, outputPath},
	})
}
