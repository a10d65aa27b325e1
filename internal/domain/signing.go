package domain

// SignScheme identifies which APK signature versions to apply
type SignScheme string

const (
	// SchemeV1Only applies only the JAR signature (best compatibility,
	// larger output)
	SchemeV1Only SignScheme = "v1"

	// SchemeV2Only applies only the APK Signature Scheme v2 (Android 7.0+)
	SchemeV2Only SignScheme = "v2"

	// SchemeV1V2 applies both signatures
	SchemeV1V2 SignScheme = "v1v2"
)

// IsValid checks if the scheme is a known value
func (s SignScheme) IsValid() bool {
	switch s {
	case SchemeV1Only, SchemeV2Only, SchemeV1V2:
		return true
	}
	return false
}

// V1 returns true if the scheme includes a v1 (JAR) signature
func (s SignScheme) V1() bool {
	return s == SchemeV1Only || s == SchemeV1V2
}

// V2 returns true if the scheme includes a v2 signature
func (s SignScheme) V2() bool {
	return s == SchemeV2Only || s == SchemeV1V2
}

// Keystore holds the signing key material reference
// Passed explicitly to signers; never read from ambient state
type Keystore struct {
	// Path to the keystore file (JKS or PKCS12)
	Path string `mapstructure:"path"`

	// Alias of the signing key
	Alias string `mapstructure:"alias"`

	// StorePass is the keystore password
	StorePass string `mapstructure:"storepass"`

	// KeyPass is the key password; defaults to StorePass when empty
	KeyPass string `mapstructure:"keypass"`
}

// EffectiveKeyPass returns KeyPass, falling back to StorePass
func (k Keystore) EffectiveKeyPass() string {
	if k.KeyPass != "" {
		return k.KeyPass
	}
	return k.StorePass
}

// Validate checks the keystore reference is complete
func (k Keystore) Validate() error {
	if k.Path == "" {
		return ErrKeystoreMissing
	}
	if k.Alias == "" || k.StorePass == "" {
		return ErrKeystoreMissing
	}
	return nil
}
