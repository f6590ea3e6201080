package token

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Key is a trusted verification key. Material is one of []byte (HMAC
// secret), *rsa.PublicKey, *ecdsa.PublicKey or ed25519.PublicKey. An empty
// ID matches any token kid.
type Key struct {
	ID       string
	Material any
}

// HMACKey wraps a shared secret.
func HMACKey(id string, secret []byte) Key {
	return Key{ID: id, Material: secret}
}

// ParsePublicKeyPEM decodes a PEM encoded RSA, ECDSA or Ed25519 public key.
func ParsePublicKeyPEM(data []byte) (any, error) {
	if k, err := jwt.ParseRSAPublicKeyFromPEM(data); err == nil {
		return k, nil
	}
	if k, err := jwt.ParseECPublicKeyFromPEM(data); err == nil {
		return k, nil
	}
	if k, err := jwt.ParseEdPublicKeyFromPEM(data); err == nil {
		return k, nil
	}
	return nil, fmt.Errorf("%w: unsupported public key", ErrVerifierConfig)
}

// ParsePrivateKeyPEM decodes a PEM encoded RSA, ECDSA or Ed25519 private key.
func ParsePrivateKeyPEM(data []byte) (any, error) {
	if k, err := jwt.ParseRSAPrivateKeyFromPEM(data); err == nil {
		return k, nil
	}
	if k, err := jwt.ParseECPrivateKeyFromPEM(data); err == nil {
		return k, nil
	}
	if k, err := jwt.ParseEdPrivateKeyFromPEM(data); err == nil {
		return k, nil
	}
	return nil, fmt.Errorf("%w: unsupported private key", ErrTokenGeneration)
}

// LoadPublicKeyFile reads a PEM public key from path.
func LoadPublicKeyFile(id, path string) (Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Key{}, fmt.Errorf("%w: read %s: %v", ErrVerifierConfig, path, err)
	}
	material, err := ParsePublicKeyPEM(data)
	if err != nil {
		return Key{}, err
	}
	return Key{ID: id, Material: material}, nil
}

// accepts reports whether the key can verify tokens signed with method.
func (k Key) accepts(method jwt.SigningMethod) bool {
	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		_, ok := k.Material.([]byte)
		return ok
	case *jwt.SigningMethodRSA, *jwt.SigningMethodRSAPSS:
		_, ok := k.Material.(*rsa.PublicKey)
		return ok
	case *jwt.SigningMethodECDSA:
		_, ok := k.Material.(*ecdsa.PublicKey)
		return ok
	case *jwt.SigningMethodEd25519:
		_, ok := k.Material.(ed25519.PublicKey)
		return ok
	}
	return false
}

// algorithms lists the JWS algorithms the key type can verify.
func (k Key) algorithms() []string {
	switch k.Material.(type) {
	case []byte:
		return []string{"HS256", "HS384", "HS512"}
	case *rsa.PublicKey:
		return []string{"RS256", "RS384", "RS512", "PS256", "PS384", "PS512"}
	case *ecdsa.PublicKey:
		return []string{"ES256", "ES384", "ES512"}
	case ed25519.PublicKey:
		return []string{"EdDSA"}
	}
	return nil
}
