package tool

import (
	"context"
	"fmt"

	"github.com/Ning0612/apkrepack/internal/domain"
)

// Jarsigner signs with the JDK jarsigner tool
// Produces v1 (JAR) signatures only; the fallback signer.
type Jarsigner struct {
	path   string
	runner Runner
}

// NewJarsigner creates a jarsigner-backed signer
func NewJarsigner(path string, runner Runner) *Jarsigner {
	return &Jarsigner{path: path, runner: runner}
}

// Sign implements the Signer interface; the APK is signed in place
// Schemes requiring a v2 signature are rejected rather than silently
// downgraded to v1
func (j *Jarsigner) Sign(ctx context.Context, apkPath string, ks domain.Keystore, scheme domain.SignScheme) error {
	if err := ks.Validate(); err != nil {
		return err
	}
	if !scheme.V1() {
		return fmt.Errorf("%w: jarsigner cannot produce a %s signature", domain.ErrInvalidScheme, scheme)
	}

	args := []string{
		"-sigalg", "SHA256withRSA",
		"-digestalg", "SHA-256",
		"-keystore", ks.Path,
		"-storepass", ks.StorePass,
		"-keypass", ks.EffectiveKeyPass(),
		apkPath,
		ks.Alias,
	}

	return j.runner.Run(ctx, Command{
		Tool: "jarsigner",
		Bin:  j.path,
		Args: args,
	})
}
