package config_test

import (
	"testing"

	"github.com/zelenmun/EvalUp/internal/config"
)

const testKey = "01234567890123456789012345678901"

func TestInitCrypto(t *testing.T) {
	t.Run("ShortKey", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("InitCrypto should panic with a short key")
			}
		}()
		config.InitCrypto("chave_curta")
	})

	t.Run("ValidKey", func(t *testing.T) {
		config.InitCrypto(testKey)
		if !config.CryptoEnabled() {
			t.Errorf("expected crypto to be enabled after InitCrypto")
		}
	})
}

func TestEncryptDecrypt(t *testing.T) {
	config.InitCrypto(testKey)

	t.Run("Cedula", func(t *testing.T) {
		plaintext := "0912345678"

		ciphertext, err := config.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if ciphertext == plaintext {
			t.Fatalf("ciphertext equals plaintext")
		}

		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != plaintext {
			t.Errorf("decrypted %q does not match original %q", decrypted, plaintext)
		}

		ciphertext2, _ := config.Encrypt(plaintext)
		if ciphertext == ciphertext2 {
			t.Errorf("encryption is not randomized, ciphertexts should differ")
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		ciphertext, err := config.Encrypt("")
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		decrypted, err := config.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != "" {
			t.Errorf("expected empty text, got %q", decrypted)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		if _, err := config.Decrypt("AAAA"); err == nil {
			t.Errorf("expected error for truncated ciphertext")
		}
	})
}
