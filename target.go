package governance

import (
	"math"

	"github.com/ethereum/go-ethereum/common"
	bin "github.com/gagliardetto/binary"

	"github.com/pyth-network/governance/types"
)

// UpgradeCosmWasmContract upgrades a CosmWasm receiver to an uploaded code id.
type UpgradeCosmWasmContract struct {
	TargetChain types.ChainName
	CodeID      uint64
}

// UpgradeEvmContract points an EVM receiver proxy at a new implementation.
type UpgradeEvmContract struct {
	TargetChain       types.ChainName
	NewImplementation common.Address
}

// UpgradeContract256Bit upgrades a receiver identified by a 32 byte class or code hash.
type UpgradeContract256Bit struct {
	TargetChain types.ChainName
	Hash        [32]byte
}

func (a UpgradeCosmWasmContract) Header() Header {
	return NewHeader(a.TargetChain, ActionUpgradeContract)
}

func (a UpgradeCosmWasmContract) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteUint64(a.CodeID, bin.BE)
	})
}

func (a UpgradeEvmContract) Header() Header {
	return NewHeader(a.TargetChain, ActionUpgradeContract)
}

func (a UpgradeEvmContract) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteBytes(a.NewImplementation.Bytes(), false)
	})
}

func (a UpgradeContract256Bit) Header() Header {
	return NewHeader(a.TargetChain, ActionUpgradeContract)
}

func (a UpgradeContract256Bit) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteBytes(a.Hash[:], false)
	})
}

// DecodeUpgradeContract picks the upgrade variant from the payload length:
// 8 bytes for a code id, 20 for an EVM address, 32 for a hash.
func DecodeUpgradeContract(data []byte) (Action, error) {
	header, r, err := openPayload(data, ActionUpgradeContract)
	if err != nil {
		return nil, err
	}

	switch r.remaining() {
	case 8:
		codeID, err := r.u64("codeId")
		if err != nil {
			return nil, err
		}

		return UpgradeCosmWasmContract{TargetChain: header.TargetChain, CodeID: codeID}, nil
	case common.AddressLength:
		b, err := r.bytes("newImplementation", common.AddressLength)
		if err != nil {
			return nil, err
		}

		return UpgradeEvmContract{TargetChain: header.TargetChain, NewImplementation: common.BytesToAddress(b)}, nil
	case 32:
		b, err := r.bytes("hash", 32)
		if err != nil {
			return nil, err
		}
		a := UpgradeContract256Bit{TargetChain: header.TargetChain}
		copy(a.Hash[:], b)

		return a, nil
	default:
		return nil, malformed(ActionUpgradeContract, "unexpected payload length %d", r.remaining())
	}
}

// AuthorizeGovernanceDataSourceTransfer carries the signed claim VAA issued by the
// new governance data source.
type AuthorizeGovernanceDataSourceTransfer struct {
	TargetChain types.ChainName
	ClaimVaa    []byte
}

func (a AuthorizeGovernanceDataSourceTransfer) Header() Header {
	return NewHeader(a.TargetChain, ActionAuthorizeGovernanceDataSourceTransfer)
}

func (a AuthorizeGovernanceDataSourceTransfer) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteBytes(a.ClaimVaa, false)
	})
}

func DecodeAuthorizeGovernanceDataSourceTransfer(data []byte) (AuthorizeGovernanceDataSourceTransfer, error) {
	header, r, err := openPayload(data, ActionAuthorizeGovernanceDataSourceTransfer)
	if err != nil {
		return AuthorizeGovernanceDataSourceTransfer{}, err
	}

	return AuthorizeGovernanceDataSourceTransfer{TargetChain: header.TargetChain, ClaimVaa: r.rest()}, nil
}

// DataSource is a Wormhole emitter trusted to publish price updates.
type DataSource struct {
	EmitterChain   types.ChainID `json:"emitterChain" yaml:"emitterChain"`
	EmitterAddress [32]byte      `json:"emitterAddress" yaml:"emitterAddress"`
}

const dataSourceSize = 2 + 32

// SetDataSources replaces the set of trusted data sources.
type SetDataSources struct {
	TargetChain types.ChainName
	DataSources []DataSource
}

func (a SetDataSources) Header() Header {
	return NewHeader(a.TargetChain, ActionSetDataSources)
}

func (a SetDataSources) Encode() ([]byte, error) {
	if len(a.DataSources) > math.MaxUint8 {
		return nil, NewFieldTooLongError("dataSources", len(a.DataSources), math.MaxUint8)
	}

	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteUint8(uint8(len(a.DataSources))); err != nil {
			return err
		}
		for _, ds := range a.DataSources {
			if err := enc.WriteUint16(uint16(ds.EmitterChain), bin.BE); err != nil {
				return err
			}
			if err := enc.WriteBytes(ds.EmitterAddress[:], false); err != nil {
				return err
			}
		}

		return nil
	})
}

func DecodeSetDataSources(data []byte) (SetDataSources, error) {
	header, r, err := openPayload(data, ActionSetDataSources)
	if err != nil {
		return SetDataSources{}, err
	}

	count, err := r.u8("count")
	if err != nil {
		return SetDataSources{}, err
	}
	if r.remaining() != int(count)*dataSourceSize {
		return SetDataSources{}, malformed(ActionSetDataSources,
			"%d data sources need %d bytes, have %d", count, int(count)*dataSourceSize, r.remaining())
	}

	sources := make([]DataSource, 0, count)
	for range count {
		chain, err := r.u16("emitterChain")
		if err != nil {
			return SetDataSources{}, err
		}
		addr, err := r.bytes("emitterAddress", 32)
		if err != nil {
			return SetDataSources{}, err
		}
		ds := DataSource{EmitterChain: types.ChainID(chain)}
		copy(ds.EmitterAddress[:], addr)
		sources = append(sources, ds)
	}

	return SetDataSources{TargetChain: header.TargetChain, DataSources: sources}, nil
}

// SetFee sets the per-update fee to Value * 10^Expo.
type SetFee struct {
	TargetChain types.ChainName
	Value       uint64
	Expo        uint64
}

func (a SetFee) Header() Header {
	return NewHeader(a.TargetChain, ActionSetFee)
}

func (a SetFee) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return writeFeePair(enc, a.Value, a.Expo)
	})
}

func DecodeSetFee(data []byte) (SetFee, error) {
	header, r, err := openPayload(data, ActionSetFee)
	if err != nil {
		return SetFee{}, err
	}
	value, expo, err := r.feePair()
	if err != nil {
		return SetFee{}, err
	}
	if err := r.done(); err != nil {
		return SetFee{}, err
	}

	return SetFee{TargetChain: header.TargetChain, Value: value, Expo: expo}, nil
}

// SetFeeInToken sets the fee charged when paying with an alternative token.
type SetFeeInToken struct {
	TargetChain types.ChainName
	Value       uint64
	Expo        uint64
	Token       []byte
}

func (a SetFeeInToken) Header() Header {
	return NewHeader(a.TargetChain, ActionSetFeeInToken)
}

func (a SetFeeInToken) Encode() ([]byte, error) {
	if len(a.Token) > math.MaxUint8 {
		return nil, NewFieldTooLongError("token", len(a.Token), math.MaxUint8)
	}

	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := writeFeePair(enc, a.Value, a.Expo); err != nil {
			return err
		}
		if err := enc.WriteUint8(uint8(len(a.Token))); err != nil {
			return err
		}

		return enc.WriteBytes(a.Token, false)
	})
}

func DecodeSetFeeInToken(data []byte) (SetFeeInToken, error) {
	header, r, err := openPayload(data, ActionSetFeeInToken)
	if err != nil {
		return SetFeeInToken{}, err
	}
	value, expo, err := r.feePair()
	if err != nil {
		return SetFeeInToken{}, err
	}
	tokenLen, err := r.u8("tokenLength")
	if err != nil {
		return SetFeeInToken{}, err
	}
	token, err := r.bytes("token", int(tokenLen))
	if err != nil {
		return SetFeeInToken{}, err
	}
	if err := r.done(); err != nil {
		return SetFeeInToken{}, err
	}

	return SetFeeInToken{TargetChain: header.TargetChain, Value: value, Expo: expo, Token: token}, nil
}

// SetTransactionFee sets the fee charged on cross-chain transactions.
type SetTransactionFee struct {
	TargetChain types.ChainName
	Value       uint64
	Expo        uint64
}

func (a SetTransactionFee) Header() Header {
	return NewHeader(a.TargetChain, ActionSetTransactionFee)
}

func (a SetTransactionFee) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return writeFeePair(enc, a.Value, a.Expo)
	})
}

func DecodeSetTransactionFee(data []byte) (SetTransactionFee, error) {
	header, r, err := openPayload(data, ActionSetTransactionFee)
	if err != nil {
		return SetTransactionFee{}, err
	}
	value, expo, err := r.feePair()
	if err != nil {
		return SetTransactionFee{}, err
	}
	if err := r.done(); err != nil {
		return SetTransactionFee{}, err
	}

	return SetTransactionFee{TargetChain: header.TargetChain, Value: value, Expo: expo}, nil
}

// SetValidPeriod sets how long, in seconds, a price update stays valid.
type SetValidPeriod struct {
	TargetChain    types.ChainName
	NewValidPeriod uint64
}

func (a SetValidPeriod) Header() Header {
	return NewHeader(a.TargetChain, ActionSetValidPeriod)
}

func (a SetValidPeriod) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteUint64(a.NewValidPeriod, bin.BE)
	})
}

func DecodeSetValidPeriod(data []byte) (SetValidPeriod, error) {
	header, r, err := openPayload(data, ActionSetValidPeriod)
	if err != nil {
		return SetValidPeriod{}, err
	}
	period, err := r.u64("newValidPeriod")
	if err != nil {
		return SetValidPeriod{}, err
	}
	if err := r.done(); err != nil {
		return SetValidPeriod{}, err
	}

	return SetValidPeriod{TargetChain: header.TargetChain, NewValidPeriod: period}, nil
}

// RequestGovernanceDataSourceTransfer is signed by the new governance source and
// embedded as the claim VAA of AuthorizeGovernanceDataSourceTransfer.
type RequestGovernanceDataSourceTransfer struct {
	TargetChain               types.ChainName
	GovernanceDataSourceIndex uint32
}

func (a RequestGovernanceDataSourceTransfer) Header() Header {
	return NewHeader(a.TargetChain, ActionRequestGovernanceDataSourceTransfer)
}

func (a RequestGovernanceDataSourceTransfer) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteUint32(a.GovernanceDataSourceIndex, bin.BE)
	})
}

func DecodeRequestGovernanceDataSourceTransfer(data []byte) (RequestGovernanceDataSourceTransfer, error) {
	header, r, err := openPayload(data, ActionRequestGovernanceDataSourceTransfer)
	if err != nil {
		return RequestGovernanceDataSourceTransfer{}, err
	}
	index, err := r.u32("governanceDataSourceIndex")
	if err != nil {
		return RequestGovernanceDataSourceTransfer{}, err
	}
	if err := r.done(); err != nil {
		return RequestGovernanceDataSourceTransfer{}, err
	}

	return RequestGovernanceDataSourceTransfer{TargetChain: header.TargetChain, GovernanceDataSourceIndex: index}, nil
}

// EvmSetWormholeAddress points an EVM receiver at a new Wormhole core contract.
type EvmSetWormholeAddress struct {
	TargetChain types.ChainName
	Address     common.Address
}

// StarknetSetWormholeAddress points a Starknet receiver at a new Wormhole core contract.
type StarknetSetWormholeAddress struct {
	TargetChain types.ChainName
	Address     [32]byte
}

func (a EvmSetWormholeAddress) Header() Header {
	return NewHeader(a.TargetChain, ActionSetWormholeAddress)
}

func (a EvmSetWormholeAddress) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteBytes(a.Address.Bytes(), false)
	})
}

func (a StarknetSetWormholeAddress) Header() Header {
	return NewHeader(a.TargetChain, ActionSetWormholeAddress)
}

func (a StarknetSetWormholeAddress) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		return enc.WriteBytes(a.Address[:], false)
	})
}

// DecodeSetWormholeAddress picks the EVM or Starknet variant from the payload length.
func DecodeSetWormholeAddress(data []byte) (Action, error) {
	header, r, err := openPayload(data, ActionSetWormholeAddress)
	if err != nil {
		return nil, err
	}

	switch r.remaining() {
	case common.AddressLength:
		return EvmSetWormholeAddress{TargetChain: header.TargetChain, Address: common.BytesToAddress(r.rest())}, nil
	case 32:
		a := StarknetSetWormholeAddress{TargetChain: header.TargetChain}
		copy(a.Address[:], r.rest())

		return a, nil
	default:
		return nil, malformed(ActionSetWormholeAddress, "unexpected payload length %d", r.remaining())
	}
}

// WithdrawFee sends Value * 10^Expo of collected fees to TargetAddress.
type WithdrawFee struct {
	TargetChain   types.ChainName
	TargetAddress common.Address
	Value         uint64
	Expo          uint64
}

func (a WithdrawFee) Header() Header {
	return NewHeader(a.TargetChain, ActionWithdrawFee)
}

func (a WithdrawFee) Encode() ([]byte, error) {
	return encodeAction(a.Header(), func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(a.TargetAddress.Bytes(), false); err != nil {
			return err
		}

		return writeFeePair(enc, a.Value, a.Expo)
	})
}

func DecodeWithdrawFee(data []byte) (WithdrawFee, error) {
	header, r, err := openPayload(data, ActionWithdrawFee)
	if err != nil {
		return WithdrawFee{}, err
	}
	addr, err := r.bytes("targetAddress", common.AddressLength)
	if err != nil {
		return WithdrawFee{}, err
	}
	value, expo, err := r.feePair()
	if err != nil {
		return WithdrawFee{}, err
	}
	if err := r.done(); err != nil {
		return WithdrawFee{}, err
	}

	return WithdrawFee{
		TargetChain:   header.TargetChain,
		TargetAddress: common.BytesToAddress(addr),
		Value:         value,
		Expo:          expo,
	}, nil
}

var (
	_ Action = UpgradeCosmWasmContract{}
	_ Action = UpgradeEvmContract{}
	_ Action = UpgradeContract256Bit{}
	_ Action = AuthorizeGovernanceDataSourceTransfer{}
	_ Action = SetDataSources{}
	_ Action = SetFee{}
	_ Action = SetFeeInToken{}
	_ Action = SetTransactionFee{}
	_ Action = SetValidPeriod{}
	_ Action = RequestGovernanceDataSourceTransfer{}
	_ Action = EvmSetWormholeAddress{}
	_ Action = StarknetSetWormholeAddress{}
	_ Action = WithdrawFee{}
)
