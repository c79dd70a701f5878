package solana

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/pyth-network/governance/sdk/errors"
)

const (
	wormholePostMessage           uint8 = 1
	wormholePostMessageUnreliable uint8 = 8
)

var wormholeAccounts = []string{
	"bridge", "message", "emitter", "sequence", "payer", "feeCollector", "clock", "rent", "systemProgram",
}

// PostMessage is the argument list of the wormhole postMessage instruction.
type PostMessage struct {
	Nonce            uint32
	Payload          []byte
	ConsistencyLevel uint8
}

func WormholeBridgePDA(program solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("Bridge")}, program)
	return pda, err
}

func WormholeFeeCollectorPDA(program solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("fee_collector")}, program)
	return pda, err
}

func WormholeSequencePDA(program, emitter solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("Sequence"), emitter.Bytes()}, program)
	return pda, err
}

// NewPostMessageInstruction publishes msg from emitter. The message account
// must sign, as must the payer.
func NewPostMessageInstruction(
	program, message, emitter, payer solana.PublicKey, msg PostMessage,
) (*solana.GenericInstruction, error) {
	bridge, err := WormholeBridgePDA(program)
	if err != nil {
		return nil, fmt.Errorf("unable to derive bridge address: %w", err)
	}
	sequence, err := WormholeSequencePDA(program, emitter)
	if err != nil {
		return nil, fmt.Errorf("unable to derive sequence address: %w", err)
	}
	feeCollector, err := WormholeFeeCollectorPDA(program)
	if err != nil {
		return nil, fmt.Errorf("unable to derive fee collector address: %w", err)
	}

	data, err := encodeData(func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(wormholePostMessage); err != nil {
			return err
		}
		if err := enc.WriteUint32(msg.Nonce, bin.LE); err != nil {
			return err
		}
		if err := writeBytesVec(enc, "payload", msg.Payload); err != nil {
			return err
		}

		return enc.WriteUint8(msg.ConsistencyLevel)
	})
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(bridge).WRITE(),
		solana.Meta(message).WRITE().SIGNER(),
		solana.Meta(emitter).SIGNER(),
		solana.Meta(sequence).WRITE(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(feeCollector).WRITE(),
		solana.Meta(solana.SysVarClockPubkey),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(program, accounts, data), nil
}

// DecodeWormholeInstruction decodes postMessage and postMessageUnreliable. The
// message payload is surfaced so the classifier can look for a governance action.
func DecodeWormholeInstruction(_ solana.AccountMetaSlice, data []byte) (Decoded, error) {
	if len(data) == 0 {
		return Decoded{}, errors.New("empty wormhole instruction")
	}

	var operation string
	switch data[0] {
	case wormholePostMessage:
		operation = "postMessage"
	case wormholePostMessageUnreliable:
		operation = "postMessageUnreliable"
	default:
		return Decoded{}, sdkerrors.NewUnknownDiscriminatorError(string(ProgramWormholeBridge), data[:1])
	}

	dec := bin.NewBorshDecoder(data[1:])
	if dec.Remaining() < 4 {
		return Decoded{}, truncatedError("nonce")
	}
	nonce, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return Decoded{}, err
	}
	payload, err := readBytesVec(dec, "payload")
	if err != nil {
		return Decoded{}, err
	}
	if dec.Remaining() != 1 {
		return Decoded{}, fmt.Errorf("consistency level: expected 1 byte, have %d", dec.Remaining())
	}
	consistency, err := dec.ReadUint8()
	if err != nil {
		return Decoded{}, err
	}

	return Decoded{
		Operation: operation,
		Accounts:  wormholeAccounts,
		Args: []NamedArg{
			{Name: "nonce", Value: nonce},
			{Name: "payload", Value: payload},
			{Name: "consistencyLevel", Value: consistency},
		},
		Payload: payload,
	}, nil
}
