package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/MKhiriev/go-vault-keeper/models"
)

var testParams = models.KDFParams{Time: 1, Memory: 1024, Threads: 1}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService(testParams)

	s1, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	s2, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}

	if len(s1) != 16 || len(s2) != 16 {
		t.Fatalf("salt lengths = %d/%d, want 16", len(s1), len(s2))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestGenerateDEK_LengthAndRandomness(t *testing.T) {
	svc := NewKeyChainService(testParams)

	d1, err := svc.GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}
	d2, err := svc.GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}

	if len(d1) != 32 || len(d2) != 32 {
		t.Fatalf("DEK lengths = %d/%d, want 32", len(d1), len(d2))
	}
	if bytes.Equal(d1, d2) {
		t.Fatalf("expected DEKs to differ, but they are equal")
	}
}

func TestNewKeyChainService_ZeroParamsFallBackToDefaults(t *testing.T) {
	svc := NewKeyChainService(models.KDFParams{Time: 3})

	got := svc.KDFParams()
	def := DefaultKDFParams()
	if got.Time != 3 {
		t.Fatalf("Time = %d, want 3", got.Time)
	}
	if got.Memory != def.Memory || got.Threads != def.Threads {
		t.Fatalf("params = %+v, want defaults for memory/threads", got)
	}
}

func TestDeriveKEK_DeterministicForSameInputs(t *testing.T) {
	svc := NewKeyChainService(testParams)

	rawKey := []byte("Abc1234567890123")
	salt := bytes.Repeat([]byte{0xAB}, 16)

	k1 := svc.DeriveKEK(rawKey, salt, testParams)
	k2 := svc.DeriveKEK(rawKey, salt, testParams)

	if len(k1) != 32 {
		t.Fatalf("KEK length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected KEKs to match for same key+salt+params")
	}
}

func TestDeriveKEK_InputsChangeResult(t *testing.T) {
	svc := NewKeyChainService(testParams)

	rawKey := []byte("Abc1234567890123")
	salt := bytes.Repeat([]byte{0x01}, 16)
	base := svc.DeriveKEK(rawKey, salt, testParams)

	tests := []struct {
		name   string
		rawKey []byte
		salt   []byte
		params models.KDFParams
	}{
		{"other salt", rawKey, bytes.Repeat([]byte{0x02}, 16), testParams},
		{"other key", []byte("Abc1234567890124"), salt, testParams},
		{"other params", rawKey, salt, models.KDFParams{Time: 2, Memory: 1024, Threads: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if bytes.Equal(base, svc.DeriveKEK(tt.rawKey, tt.salt, tt.params)) {
				t.Fatalf("expected a different KEK")
			}
		})
	}
}

// The envelope must stay readable by a plain AES-GCM implementation.
func TestSeal_LayoutMatchesAESGCM(t *testing.T) {
	svc := NewKeyChainService(testParams)

	key := bytes.Repeat([]byte{0x2A}, 32)
	plaintext := []byte("s3cr3t!")
	aad := []byte("secret-id:value")

	env, err := svc.Seal(key, plaintext, aad)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	if env[0] != VersionAESGCM {
		t.Fatalf("version byte = %#x, want %#x", env[0], VersionAESGCM)
	}
	if len(env) != 1+12+len(plaintext)+16 {
		t.Fatalf("envelope length = %d", len(env))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("aes.NewCipher error: %v", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		t.Fatalf("cipher.NewGCM error: %v", err)
	}

	plain, err := gcm.Open(nil, env[1:13], env[13:], aad)
	if err != nil {
		t.Fatalf("gcm.Open error: %v", err)
	}
	if !bytes.Equal(plain, plaintext) {
		t.Fatalf("decrypted mismatch")
	}
}

func TestSeal_NonceRandomness(t *testing.T) {
	svc := NewKeyChainService(testParams)
	key := bytes.Repeat([]byte{0x2A}, 32)

	e1, err := svc.Seal(key, []byte("same"), nil)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	e2, err := svc.Seal(key, []byte("same"), nil)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if bytes.Equal(e1[1:13], e2[1:13]) {
		t.Fatalf("expected different nonces for two encryptions")
	}
	if bytes.Equal(e1, e2) {
		t.Fatalf("expected different envelopes for two encryptions")
	}
}
