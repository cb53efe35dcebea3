package crypto

import "github.com/awnumar/memguard"

// KeyBundle is the secret key material of one vault: the data key that
// encrypts its secrets and the private key that opens shares sent to it.
// It is stored only inside an envelope under the vault's KEK.
type KeyBundle struct {
	DEK             []byte
	SharePrivateKey []byte
}

// Marshal concatenates the bundle into a fixed 64-byte layout:
// DEK(32) || share private key(32). The result holds key material; the
// caller seals it and wipes it.
//
// Returns ErrMalformedKeyBundle when either key is not 32 bytes.
func (b KeyBundle) Marshal() ([]byte, error) {
	if len(b.DEK) != KeySize || len(b.SharePrivateKey) != KeySize {
		return nil, ErrMalformedKeyBundle
	}
	out := make([]byte, 0, 2*KeySize)
	out = append(out, b.DEK...)
	return append(out, b.SharePrivateKey...), nil
}

// UnmarshalKeyBundle splits raw into a [KeyBundle]. The returned slices are
// copies; raw may be wiped afterwards.
//
// Returns ErrMalformedKeyBundle when raw is not exactly 64 bytes.
func UnmarshalKeyBundle(raw []byte) (KeyBundle, error) {
	if len(raw) != 2*KeySize {
		return KeyBundle{}, ErrMalformedKeyBundle
	}
	b := KeyBundle{
		DEK:             make([]byte, KeySize),
		SharePrivateKey: make([]byte, KeySize),
	}
	copy(b.DEK, raw[:KeySize])
	copy(b.SharePrivateKey, raw[KeySize:])
	return b, nil
}

// Wipe zeroes the bundle in place.
func (b KeyBundle) Wipe() {
	memguard.WipeBytes(b.DEK)
	memguard.WipeBytes(b.SharePrivateKey)
}
