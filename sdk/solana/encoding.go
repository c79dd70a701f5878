package solana

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/pyth-network/governance/internal/utils/safecast"
)

// encodeData runs write against a Borsh encoder and returns the bytes written.
func encodeData(write func(enc *bin.Encoder) error) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := write(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// anchorDiscriminator returns the 8 byte selector of an Anchor instruction.
func anchorDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("global:" + name))

	var discriminator [8]byte
	copy(discriminator[:], sum[:8])

	return discriminator
}

// anchorAccountDiscriminator returns the 8 byte prefix of an Anchor account.
func anchorAccountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))

	var discriminator [8]byte
	copy(discriminator[:], sum[:8])

	return discriminator
}

func writeBytesVec(enc *bin.Encoder, field string, b []byte) error {
	n, err := lengthPrefix(field, len(b))
	if err != nil {
		return err
	}
	if err := enc.WriteUint32(n, bin.LE); err != nil {
		return err
	}

	return enc.WriteBytes(b, false)
}

func readBytesVec(dec *bin.Decoder, field string) ([]byte, error) {
	if dec.Remaining() < 4 {
		return nil, truncatedError(field)
	}
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(dec.Remaining()) {
		return nil, overrunError(field, n, dec.Remaining())
	}
	if n == 0 {
		return []byte{}, nil
	}
	b, err := dec.ReadNBytes(int(n))
	if err != nil {
		return nil, err
	}

	return bytes.Clone(b), nil
}

func readPublicKey(dec *bin.Decoder, field string) (solana.PublicKey, error) {
	if dec.Remaining() < solana.PublicKeyLength {
		return solana.PublicKey{}, truncatedError(field)
	}
	b, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}

	return solana.PublicKeyFromBytes(b), nil
}

func lengthPrefix(field string, n int) (uint32, error) {
	v, err := safecast.IntToUint32(n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}

	return v, nil
}

func truncatedError(field string) error {
	return fmt.Errorf("%s: truncated", field)
}

func overrunError(field string, n uint32, remaining int) error {
	return fmt.Errorf("%s: declared %d bytes, have %d", field, n, remaining)
}
