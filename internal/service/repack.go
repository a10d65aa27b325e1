package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ning0612/apkrepack/internal/archive"
	"github.com/Ning0612/apkrepack/internal/config"
	"github.com/Ning0612/apkrepack/internal/core/assembly"
	"github.com/Ning0612/apkrepack/internal/core/checksum"
	"github.com/Ning0612/apkrepack/internal/domain"
	"github.com/Ning0612/apkrepack/internal/lock"
	"github.com/Ning0612/apkrepack/internal/logger"
	"github.com/Ning0612/apkrepack/internal/progress"
	"github.com/Ning0612/apkrepack/internal/tool"
)

// RepackService orchestrates the build → align → sign pipeline
//
// Tool fallback policy: a secondary tool is tried only when the
// primary is not installed (domain.ErrToolNotFound). A tool that ran
// and failed (domain.ErrToolFailed) aborts the operation; falling back
// would mask real build errors.
type RepackService struct {
	cfg       *config.Config
	apktool   *tool.Apktool
	archivers []tool.Archiver // tried in order; last is the built-in writer
	signers   []tool.Signer
	aligner   tool.Aligner
	converter tool.BytecodeConverter
	calc      *checksum.Calculator
	reporter  progress.Reporter
}

// NewRepackService creates a service wired to the external tools named
// in cfg; cfg is the only configuration source, nothing global
func NewRepackService(cfg *config.Config) (*RepackService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runner := tool.NewExecRunner()
	apktool := tool.NewApktool(cfg.Tools.Apktool, cfg.Tools.Java, runner)

	return &RepackService{
		cfg:     cfg,
		apktool: apktool,
		archivers: []tool.Archiver{
			apktool,
			tool.NewSevenZip(cfg.Tools.SevenZip, cfg.Packaging.CompressLevel, runner),
			archive.NewWriter(nil),
		},
		signers: []tool.Signer{
			tool.NewApksigner(cfg.Tools.Apksigner, runner),
			tool.NewJarsigner(cfg.Tools.Jarsigner, runner),
		},
		aligner:   tool.NewZipalign(cfg.Tools.Zipalign, runner),
		converter: tool.NewD8(cfg.Tools.D8, cfg.Tools.AndroidJar, runner),
		calc:      checksum.NewDefaultCalculator(),
	}, nil
}

// SetProgressReporter sets the progress reporter used by the built-in
// archiver
func (s *RepackService) SetProgressReporter(reporter progress.Reporter) {
	s.reporter = reporter
	s.archivers[len(s.archivers)-1] = archive.NewWriter(reporter)
}

// BuildPlan assembles the archive plan for an unpacked package root
// Traversal warnings are logged and kept on the plan
func (s *RepackService) BuildPlan(root string) (*domain.PackPlan, error) {
	plan, err := assembly.Assemble(root)
	if err != nil {
		return nil, err
	}

	log := logger.Get()
	for _, w := range plan.Warnings {
		log.Warn("skipped unreadable entry", "path", w.Path, "error", w.Err)
	}
	log.Debug("assembled pack plan",
		"root", plan.Root,
		"entries", plan.Stats.TotalFiles,
		"stored", plan.Stats.Stored,
		"deflated", plan.Stats.Deflated,
		"bytes", plan.Stats.TotalBytes,
	)

	return plan, nil
}

// Build assembles inputDir into an unsigned archive at outputPath
func (s *RepackService) Build(ctx context.Context, inputDir, outputPath string) error {
	plan, err := s.BuildPlan(inputDir)
	if err != nil {
		return err
	}

	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}

	log := logger.Get()
	var lastErr error
	for _, archiver := range s.archivers {
		err := archiver.Archive(ctx, plan, outputPath)
		if err == nil {
			log.Info("archive built", "output", outputPath, "entries", plan.Stats.TotalFiles)
			return nil
		}
		if !errors.Is(err, domain.ErrToolNotFound) {
			return err
		}
		log.Warn("archiver unavailable, trying next", "error", err)
		lastErr = err
	}
	return lastErr
}

// Sign signs the archive in place using the configured keystore
func (s *RepackService) Sign(ctx context.Context, apkPath string) error {
	if _, err := os.Stat(apkPath); err != nil {
		return fmt.Errorf("apk not found: %w", err)
	}

	scheme := s.cfg.Signing.Scheme
	if scheme == "" {
		scheme = domain.SchemeV2Only
	}

	log := logger.Get()
	var lastErr error
	for _, signer := range s.signers {
		err := signer.Sign(ctx, apkPath, s.cfg.Signing.Keystore, scheme)
		if err == nil {
			log.Info("archive signed", "apk", apkPath, "scheme", string(scheme))
			return nil
		}
		if !errors.Is(err, domain.ErrToolNotFound) {
			return err
		}
		log.Warn("signer unavailable, trying next", "error", err)
		lastErr = err
	}
	return lastErr
}

// Align writes a 4-byte aligned copy of inputPath to outputPath
func (s *RepackService) Align(ctx context.Context, inputPath, outputPath string) error {
	if err := s.aligner.Align(ctx, inputPath, outputPath); err != nil {
		return err
	}
	logger.Get().Info("archive aligned", "output", outputPath)
	return nil
}

// Decode unpacks an APK into outputDir with apktool
// Decoding has no fallback: only apktool understands its own resource
// re-encoding format
func (s *RepackService) Decode(ctx context.Context, apkPath, outputDir string) error {
	if _, err := os.Stat(apkPath); err != nil {
		return fmt.Errorf("apk not found: %w", err)
	}
	if err := s.apktool.Decode(ctx, apkPath, outputDir); err != nil {
		return err
	}
	logger.Get().Info("apk decoded", "output", outputDir)
	return nil
}

// ConvertDex converts jar/class inputs into a dex file
func (s *RepackService) ConvertDex(ctx context.Context, inputs []string, outputDex string) error {
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("input not found: %w", err)
		}
	}
	if err := s.converter.Convert(ctx, inputs, outputDex); err != nil {
		return err
	}
	logger.Get().Info("bytecode converted", "output", outputDex)
	return nil
}

// Repack runs the full pipeline: build, align (when enabled), sign.
// Returns the SHA-256 digest of the final archive.
func (s *RepackService) Repack(ctx context.Context, inputDir, outputPath string) (string, error) {
	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return "", err
	}

	log := logger.Get()

	// Guard the output so two invocations cannot write the same file
	outLock := lock.NewOutputLock(outputPath)
	if err := outLock.Acquire(outputPath); err != nil {
		return "", err
	}
	defer func() {
		if err := outLock.Release(); err != nil {
			log.Warn("failed to release output lock", "error", err)
		}
	}()

	buildTarget := outputPath
	if s.cfg.Packaging.Align {
		tmpDir, err := os.MkdirTemp("", s.cfg.Packaging.TempPrefix+"*")
		if err != nil {
			return "", fmt.Errorf("creating work dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)
		buildTarget = filepath.Join(tmpDir, "unaligned.apk")
	}

	if err := s.Build(ctx, inputDir, buildTarget); err != nil {
		return "", fmt.Errorf("build: %w", err)
	}

	if s.cfg.Packaging.Align {
		if err := s.Align(ctx, buildTarget, outputPath); err != nil {
			return "", fmt.Errorf("align: %w", err)
		}
	}

	if err := s.Sign(ctx, outputPath); err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}

	digest, err := s.calc.SumFile(ctx, outputPath)
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}

	log.Info("repack complete", "output", outputPath, "sha256", digest)
	return digest, nil
}
