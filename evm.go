package governance

import (
	"github.com/ethereum/go-ethereum/common"
	bin "github.com/gagliardetto/binary"
	"github.com/holiman/uint256"

	"github.com/pyth-network/governance/types"
)

// EvmExecute asks the executor contract at ExecutorAddress to call CallAddress
// with CallData, forwarding Value wei.
type EvmExecute struct {
	TargetChain     types.ChainName
	ExecutorAddress common.Address
	CallAddress     common.Address
	Value           uint256.Int
	CallData        []byte
}

func (a EvmExecute) Header() Header {
	return NewHeader(a.TargetChain, ActionExecute)
}

func (a EvmExecute) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(a.ExecutorAddress.Bytes(), false); err != nil {
			return err
		}
		if err := enc.WriteBytes(a.CallAddress.Bytes(), false); err != nil {
			return err
		}
		value := a.Value.Bytes32()
		if err := enc.WriteBytes(value[:], false); err != nil {
			return err
		}

		return enc.WriteBytes(a.CallData, false)
	})
}

func DecodeEvmExecute(data []byte) (EvmExecute, error) {
	header, r, err := openPayload(data, ActionExecute)
	if err != nil {
		return EvmExecute{}, err
	}
	executor, err := r.bytes("executorAddress", common.AddressLength)
	if err != nil {
		return EvmExecute{}, err
	}
	call, err := r.bytes("callAddress", common.AddressLength)
	if err != nil {
		return EvmExecute{}, err
	}
	value, err := r.bytes("value", 32)
	if err != nil {
		return EvmExecute{}, err
	}

	a := EvmExecute{
		TargetChain:     header.TargetChain,
		ExecutorAddress: common.BytesToAddress(executor),
		CallAddress:     common.BytesToAddress(call),
		CallData:        r.rest(),
	}
	a.Value.SetBytes32(value)

	return a, nil
}

var _ Action = EvmExecute{}
