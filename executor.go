package governance

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/pyth-network/governance/internal/utils/safecast"
	"github.com/pyth-network/governance/types"
)

const (
	// accountMetaSize is a pubkey followed by the signer and writable flags.
	accountMetaSize = solana.PublicKeyLength + 2
	// minInstructionSize is a program id plus empty account and data lists.
	minInstructionSize = solana.PublicKeyLength + 4 + 4
)

// ExecutePostedVaa relays a list of Solana instructions to the remote executor
// program on TargetChain, which replays them signed by its executor key.
type ExecutePostedVaa struct {
	TargetChain  types.ChainName
	Instructions []*solana.GenericInstruction
}

func (a ExecutePostedVaa) Header() Header {
	return NewHeader(a.TargetChain, ActionExecutePostedVaa)
}

func (a ExecutePostedVaa) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return writeInstructions(enc, a.Instructions)
	})
}

func DecodeExecutePostedVaa(data []byte) (ExecutePostedVaa, error) {
	header, _, err := openPayload(data, ActionExecutePostedVaa)
	if err != nil {
		return ExecutePostedVaa{}, err
	}

	ixs, err := DecodeInstructions(data[HeaderSize:])
	if err != nil {
		return ExecutePostedVaa{}, err
	}

	return ExecutePostedVaa{TargetChain: header.TargetChain, Instructions: ixs}, nil
}

// EncodeInstructions serializes instructions in the Borsh layout consumed by the
// remote executor: a u32 count, then per instruction the program id, the
// account metas and the data, each list prefixed by a little-endian u32.
func EncodeInstructions(ixs []*solana.GenericInstruction) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := writeInstructions(bin.NewBorshEncoder(buf), ixs); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeInstructions(enc *bin.Encoder, ixs []*solana.GenericInstruction) error {
	count, err := safecast.IntToUint32(len(ixs))
	if err != nil {
		return fmt.Errorf("instruction count: %w", err)
	}
	if err := enc.WriteUint32(count, bin.LE); err != nil {
		return err
	}

	for _, ix := range ixs {
		if err := enc.WriteBytes(ix.ProgID[:], false); err != nil {
			return err
		}

		nAccounts, err := safecast.IntToUint32(len(ix.AccountValues))
		if err != nil {
			return fmt.Errorf("account count: %w", err)
		}
		if err := enc.WriteUint32(nAccounts, bin.LE); err != nil {
			return err
		}
		for _, meta := range ix.AccountValues {
			if err := enc.WriteBytes(meta.PublicKey[:], false); err != nil {
				return err
			}
			if err := enc.WriteBool(meta.IsSigner); err != nil {
				return err
			}
			if err := enc.WriteBool(meta.IsWritable); err != nil {
				return err
			}
		}

		nData, err := safecast.IntToUint32(len(ix.DataBytes))
		if err != nil {
			return fmt.Errorf("data length: %w", err)
		}
		if err := enc.WriteUint32(nData, bin.LE); err != nil {
			return err
		}
		if err := enc.WriteBytes(ix.DataBytes, false); err != nil {
			return err
		}
	}

	return nil
}

// DecodeInstructions is the inverse of EncodeInstructions. Every declared count
// is checked against the bytes left before anything is allocated, and the
// buffer must be consumed exactly.
func DecodeInstructions(data []byte) ([]*solana.GenericInstruction, error) {
	dec := bin.NewBorshDecoder(data)
	fail := func(format string, args ...any) ([]*solana.GenericInstruction, error) {
		return nil, malformed(ActionExecutePostedVaa, format, args...)
	}

	if dec.Remaining() < 4 {
		return fail("instruction count: truncated")
	}
	count, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return fail("instruction count: %v", err)
	}
	if uint64(count)*minInstructionSize > uint64(dec.Remaining()) {
		return fail("%d instructions cannot fit in %d bytes", count, dec.Remaining())
	}

	ixs := make([]*solana.GenericInstruction, 0, count)
	for i := range count {
		if dec.Remaining() < minInstructionSize {
			return fail("instruction %d: truncated", i)
		}
		programID, err := dec.ReadNBytes(solana.PublicKeyLength)
		if err != nil {
			return fail("instruction %d: program id: %v", i, err)
		}

		nAccounts, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return fail("instruction %d: account count: %v", i, err)
		}
		if uint64(nAccounts)*accountMetaSize+4 > uint64(dec.Remaining()) {
			return fail("instruction %d: %d accounts overrun buffer", i, nAccounts)
		}
		accounts := make(solana.AccountMetaSlice, 0, nAccounts)
		for j := range nAccounts {
			key, err := dec.ReadNBytes(solana.PublicKeyLength)
			if err != nil {
				return fail("instruction %d: account %d: %v", i, j, err)
			}
			isSigner, err := readFlag(dec)
			if err != nil {
				return fail("instruction %d: account %d: signer flag: %v", i, j, err)
			}
			isWritable, err := readFlag(dec)
			if err != nil {
				return fail("instruction %d: account %d: writable flag: %v", i, j, err)
			}
			accounts = append(accounts, solana.NewAccountMeta(solana.PublicKeyFromBytes(key), isWritable, isSigner))
		}

		nData, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return fail("instruction %d: data length: %v", i, err)
		}
		if uint64(nData) > uint64(dec.Remaining()) {
			return fail("instruction %d: data length %d overruns buffer", i, nData)
		}
		ixData := []byte{}
		if nData > 0 {
			raw, err := dec.ReadNBytes(int(nData))
			if err != nil {
				return fail("instruction %d: data: %v", i, err)
			}
			ixData = bytes.Clone(raw)
		}

		ixs = append(ixs, solana.NewInstruction(solana.PublicKeyFromBytes(programID), accounts, ixData))
	}

	if dec.Remaining() != 0 {
		return fail("%d trailing bytes", dec.Remaining())
	}

	return ixs, nil
}

func readFlag(dec *bin.Decoder) (bool, error) {
	b, err := dec.ReadUint8()
	if err != nil {
		return false, err
	}
	if b > 1 {
		return false, fmt.Errorf("invalid bool %d", b)
	}

	return b == 1, nil
}

var _ Action = ExecutePostedVaa{}
