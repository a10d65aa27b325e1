package tool

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// Apksigner signs with the Android SDK apksigner tool
// Supports all signature schemes; the primary signer.
type Apksigner struct {
	path   string
	runner Runner
}

// NewApksigner creates an apksigner-backed signer
func NewApksigner(path string, runner Runner) *Apksigner {
	return &Apksigner{path: path, runner: runner}
}

// Sign implements the Signer interface; the APK is signed in place
func (a *Apksigner) Sign(ctx context.Context, apkPath string, ks domain.Keystore, scheme domain.SignScheme) error {
	if err := ks.Validate(); err != nil {
		return err
	}
	if !scheme.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidScheme, scheme)
	}

	args := []string{
		"sign",
		"--ks", ks.Path,
		"--ks-key-alias", ks.Alias,
		"--ks-pass", "pass:" + ks.StorePass,
		"--key-pass", "pass:" + ks.EffectiveKeyPass(),
		"--v1-signing-enabled", strconv.FormatBool(scheme.V1()),
		"--v2-signing-enabled", strconv.FormatBool(scheme.V2()),
		apkPath,
	}

	return a.runner.Run(ctx, Command{
		Tool: "apksigner",
		Bin:  a.path,
		Args: args,
	})
}
