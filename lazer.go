package governance

import (
	"fmt"

	bin "github.com/gagliardetto/binary"

	"github.com/pyth-network/governance/internal/utils/safecast"
	"github.com/pyth-network/governance/types"
)

// UpgradeSuiLazerContract authorizes a Sui package upgrade to Version with digest Hash.
type UpgradeSuiLazerContract struct {
	TargetChain types.ChainName
	Version     uint64
	Hash        [32]byte
}

func (a UpgradeSuiLazerContract) Header() Header {
	return NewHeader(a.TargetChain, ActionUpgradeSuiLazerContract)
}

func (a UpgradeSuiLazerContract) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteUint64(a.Version, bin.BE); err != nil {
			return err
		}

		return enc.WriteBytes(a.Hash[:], false)
	})
}

func DecodeUpgradeSuiLazerContract(data []byte) (UpgradeSuiLazerContract, error) {
	header, r, err := openPayload(data, ActionUpgradeSuiLazerContract)
	if err != nil {
		return UpgradeSuiLazerContract{}, err
	}
	version, err := r.u64("version")
	if err != nil {
		return UpgradeSuiLazerContract{}, err
	}
	hash, err := r.bytes("hash", 32)
	if err != nil {
		return UpgradeSuiLazerContract{}, err
	}
	if err := r.done(); err != nil {
		return UpgradeSuiLazerContract{}, err
	}

	a := UpgradeSuiLazerContract{TargetChain: header.TargetChain, Version: version}
	copy(a.Hash[:], hash)

	return a, nil
}

// CardanoLazerScript selects which Cardano validator an upgrade replaces.
type CardanoLazerScript uint8

const (
	CardanoScriptWithdraw CardanoLazerScript = 0
	CardanoScriptSpend    CardanoLazerScript = 1
)

// CardanoScriptHashLength is the size of a Blake2b-224 script hash.
const CardanoScriptHashLength = 28

// UpgradeCardanoLazerContract replaces a Lazer validator script on Cardano.
type UpgradeCardanoLazerContract struct {
	TargetChain types.ChainName
	Script      CardanoLazerScript
	Hash        [CardanoScriptHashLength]byte
}

func (a UpgradeCardanoLazerContract) Header() Header {
	return NewHeader(a.TargetChain, ActionUpgradeCardanoLazerContract)
}

func (a UpgradeCardanoLazerContract) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(uint8(a.Script)); err != nil {
			return err
		}

		return enc.WriteBytes(a.Hash[:], false)
	})
}

func DecodeUpgradeCardanoLazerContract(data []byte) (UpgradeCardanoLazerContract, error) {
	header, r, err := openPayload(data, ActionUpgradeCardanoLazerContract)
	if err != nil {
		return UpgradeCardanoLazerContract{}, err
	}
	script, err := r.u8("script")
	if err != nil {
		return UpgradeCardanoLazerContract{}, err
	}
	if CardanoLazerScript(script) != CardanoScriptWithdraw && CardanoLazerScript(script) != CardanoScriptSpend {
		return UpgradeCardanoLazerContract{}, malformed(ActionUpgradeCardanoLazerContract, "unknown script %d", script)
	}
	hash, err := r.bytes("hash", CardanoScriptHashLength)
	if err != nil {
		return UpgradeCardanoLazerContract{}, err
	}
	if err := r.done(); err != nil {
		return UpgradeCardanoLazerContract{}, err
	}

	a := UpgradeCardanoLazerContract{TargetChain: header.TargetChain, Script: CardanoLazerScript(script)}
	copy(a.Hash[:], hash)

	return a, nil
}

// UpdateTrustedSigner264Bit adds, refreshes or (with ExpiresAt 0) removes a
// compressed secp256k1 Lazer signer.
type UpdateTrustedSigner264Bit struct {
	TargetChain types.ChainName
	PublicKey   [33]byte
	ExpiresAt   uint64
}

// UpdateTrustedSigner256Bit is the ed25519 flavour of UpdateTrustedSigner264Bit.
type UpdateTrustedSigner256Bit struct {
	TargetChain types.ChainName
	PublicKey   [32]byte
	ExpiresAt   uint64
}

func (a UpdateTrustedSigner264Bit) Header() Header {
	return NewHeader(a.TargetChain, ActionUpdateTrustedSigner)
}

func (a UpdateTrustedSigner264Bit) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(a.PublicKey[:], false); err != nil {
			return err
		}

		return enc.WriteUint64(a.ExpiresAt, bin.BE)
	})
}

func (a UpdateTrustedSigner256Bit) Header() Header {
	return NewHeader(a.TargetChain, ActionUpdateTrustedSigner)
}

func (a UpdateTrustedSigner256Bit) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(a.PublicKey[:], false); err != nil {
			return err
		}

		return enc.WriteUint64(a.ExpiresAt, bin.BE)
	})
}

// DecodeUpdateTrustedSigner picks the key width from the payload length.
func DecodeUpdateTrustedSigner(data []byte) (Action, error) {
	header, r, err := openPayload(data, ActionUpdateTrustedSigner)
	if err != nil {
		return nil, err
	}

	switch r.remaining() {
	case 33 + 8:
		key, _ := r.bytes("publicKey", 33)
		expiresAt, err := r.u64("expiresAt")
		if err != nil {
			return nil, err
		}
		a := UpdateTrustedSigner264Bit{TargetChain: header.TargetChain, ExpiresAt: expiresAt}
		copy(a.PublicKey[:], key)

		return a, nil
	case 32 + 8:
		key, _ := r.bytes("publicKey", 32)
		expiresAt, err := r.u64("expiresAt")
		if err != nil {
			return nil, err
		}
		a := UpdateTrustedSigner256Bit{TargetChain: header.TargetChain, ExpiresAt: expiresAt}
		copy(a.PublicKey[:], key)

		return a, nil
	default:
		return nil, malformed(ActionUpdateTrustedSigner, "unexpected payload length %d", r.remaining())
	}
}

// LazerExecute carries an opaque, already serialized Lazer governance instruction.
type LazerExecute struct {
	TargetChain types.ChainName
	Directive   []byte
}

func (a LazerExecute) Header() Header {
	return NewHeader(a.TargetChain, ActionLazerExecute)
}

func (a LazerExecute) Encode() ([]byte, error) {
	n, err := safecast.IntToUint32(len(a.Directive))
	if err != nil {
		return nil, fmt.Errorf("directive: %w", err)
	}

	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteUint32(n, bin.BE); err != nil {
			return err
		}

		return enc.WriteBytes(a.Directive, false)
	})
}

func DecodeLazerExecute(data []byte) (LazerExecute, error) {
	header, r, err := openPayload(data, ActionLazerExecute)
	if err != nil {
		return LazerExecute{}, err
	}
	n, err := r.u32("length")
	if err != nil {
		return LazerExecute{}, err
	}
	if uint64(n) != uint64(r.remaining()) {
		return LazerExecute{}, malformed(ActionLazerExecute, "declared %d bytes, have %d", n, r.remaining())
	}

	return LazerExecute{TargetChain: header.TargetChain, Directive: r.rest()}, nil
}

var (
	_ Action = UpgradeSuiLazerContract{}
	_ Action = UpgradeCardanoLazerContract{}
	_ Action = UpdateTrustedSigner264Bit{}
	_ Action = UpdateTrustedSigner256Bit{}
	_ Action = LazerExecute{}
)
