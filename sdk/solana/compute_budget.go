package solana

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/pyth-network/governance/sdk/errors"
)

const (
	computeBudgetRequestUnits uint8 = iota
	computeBudgetRequestHeapFrame
	computeBudgetSetComputeUnitLimit
	computeBudgetSetComputeUnitPrice
	computeBudgetSetLoadedAccountsDataSizeLimit
)

// NewSetComputeUnitLimitInstruction caps the compute units a transaction may use.
func NewSetComputeUnitLimitInstruction(units uint32) (*solana.GenericInstruction, error) {
	data, err := encodeData(func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(computeBudgetSetComputeUnitLimit); err != nil {
			return err
		}

		return enc.WriteUint32(units, bin.LE)
	})
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(ComputeBudgetProgramID, solana.AccountMetaSlice{}, data), nil
}

// NewSetComputeUnitPriceInstruction sets the priority fee in micro-lamports per unit.
func NewSetComputeUnitPriceInstruction(microLamports uint64) (*solana.GenericInstruction, error) {
	data, err := encodeData(func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(computeBudgetSetComputeUnitPrice); err != nil {
			return err
		}

		return enc.WriteUint64(microLamports, bin.LE)
	})
	if err != nil {
		return nil, err
	}

	return solana.NewInstruction(ComputeBudgetProgramID, solana.AccountMetaSlice{}, data), nil
}

// DecodeComputeBudgetInstruction decodes compute budget program instructions.
func DecodeComputeBudgetInstruction(_ solana.AccountMetaSlice, data []byte) (Decoded, error) {
	if len(data) == 0 {
		return Decoded{}, errors.New("empty compute budget instruction")
	}

	dec := bin.NewBinDecoder(data[1:])
	var (
		decoded Decoded
		want    int
	)
	switch data[0] {
	case computeBudgetRequestUnits:
		decoded.Operation, want = "RequestUnits", 8
	case computeBudgetRequestHeapFrame:
		decoded.Operation, want = "RequestHeapFrame", 4
	case computeBudgetSetComputeUnitLimit:
		decoded.Operation, want = "SetComputeUnitLimit", 4
	case computeBudgetSetComputeUnitPrice:
		decoded.Operation, want = "SetComputeUnitPrice", 8
	case computeBudgetSetLoadedAccountsDataSizeLimit:
		decoded.Operation, want = "SetLoadedAccountsDataSizeLimit", 4
	default:
		return Decoded{}, sdkerrors.NewUnknownDiscriminatorError(string(ProgramComputeBudget), data[:1])
	}
	if dec.Remaining() != want {
		return Decoded{}, fmt.Errorf("%s: expected %d bytes of arguments, got %d", decoded.Operation, want, dec.Remaining())
	}

	switch data[0] {
	case computeBudgetRequestUnits:
		units, _ := dec.ReadUint32(bin.LE)
		fee, _ := dec.ReadUint32(bin.LE)
		decoded.Args = []NamedArg{{Name: "units", Value: units}, {Name: "additionalFee", Value: fee}}
	case computeBudgetRequestHeapFrame:
		bytes, _ := dec.ReadUint32(bin.LE)
		decoded.Args = []NamedArg{{Name: "bytes", Value: bytes}}
	case computeBudgetSetComputeUnitLimit:
		units, _ := dec.ReadUint32(bin.LE)
		decoded.Args = []NamedArg{{Name: "units", Value: units}}
	case computeBudgetSetComputeUnitPrice:
		microLamports, _ := dec.ReadUint64(bin.LE)
		decoded.Args = []NamedArg{{Name: "microLamports", Value: microLamports}}
	case computeBudgetSetLoadedAccountsDataSizeLimit:
		bytes, _ := dec.ReadUint32(bin.LE)
		decoded.Args = []NamedArg{{Name: "bytes", Value: bytes}}
	}

	return decoded, nil
}
