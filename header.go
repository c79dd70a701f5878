package governance

import (
	"bytes"
	"fmt"
	"sort"

	bin "github.com/gagliardetto/binary"

	"github.com/pyth-network/governance/types"
)

// MagicNumber prefixes every governance message ("PTGM").
const MagicNumber uint32 = 0x5054474d

// HeaderSize is the encoded size of a Header.
const HeaderSize = 8

// Module groups governance actions by the contract that executes them.
type Module uint8

const (
	ModuleExecutor    Module = 0
	ModuleTarget      Module = 1
	ModuleEvmExecutor Module = 2
	ModuleLazer       Module = 3
)

func (m Module) String() string {
	switch m {
	case ModuleExecutor:
		return "Executor"
	case ModuleTarget:
		return "Target"
	case ModuleEvmExecutor:
		return "EvmExecutor"
	case ModuleLazer:
		return "Lazer"
	default:
		return fmt.Sprintf("Module(%d)", uint8(m))
	}
}

// ActionName identifies a governance action independently of its wire ids.
type ActionName string

const (
	ActionExecutePostedVaa ActionName = "ExecutePostedVaa"

	ActionUpgradeContract                       ActionName = "UpgradeContract"
	ActionAuthorizeGovernanceDataSourceTransfer ActionName = "AuthorizeGovernanceDataSourceTransfer"
	ActionSetDataSources                        ActionName = "SetDataSources"
	ActionSetFee                                ActionName = "SetFee"
	ActionSetValidPeriod                        ActionName = "SetValidPeriod"
	ActionRequestGovernanceDataSourceTransfer   ActionName = "RequestGovernanceDataSourceTransfer"
	ActionSetWormholeAddress                    ActionName = "SetWormholeAddress"
	ActionSetFeeInToken                         ActionName = "SetFeeInToken"
	ActionSetTransactionFee                     ActionName = "SetTransactionFee"
	ActionWithdrawFee                           ActionName = "WithdrawFee"

	ActionExecute ActionName = "Execute"

	ActionUpgradeSuiLazerContract     ActionName = "UpgradeSuiLazerContract"
	ActionUpdateTrustedSigner         ActionName = "UpdateTrustedSigner"
	ActionUpgradeCardanoLazerContract ActionName = "UpgradeCardanoLazerContract"
	ActionLazerExecute                ActionName = "LazerExecute"
)

type actionID struct {
	module Module
	action uint8
}

var actionIDs = map[ActionName]actionID{
	ActionExecutePostedVaa: {ModuleExecutor, 0},

	ActionUpgradeContract:                       {ModuleTarget, 0},
	ActionAuthorizeGovernanceDataSourceTransfer: {ModuleTarget, 1},
	ActionSetDataSources:                        {ModuleTarget, 2},
	ActionSetFee:                                {ModuleTarget, 3},
	ActionSetValidPeriod:                        {ModuleTarget, 4},
	ActionRequestGovernanceDataSourceTransfer:   {ModuleTarget, 5},
	ActionSetWormholeAddress:                    {ModuleTarget, 6},
	ActionSetFeeInToken:                         {ModuleTarget, 7},
	ActionSetTransactionFee:                     {ModuleTarget, 8},
	ActionWithdrawFee:                           {ModuleTarget, 9},

	ActionExecute: {ModuleEvmExecutor, 0},

	ActionUpgradeSuiLazerContract:     {ModuleLazer, 0},
	ActionUpdateTrustedSigner:         {ModuleLazer, 1},
	ActionUpgradeCardanoLazerContract: {ModuleLazer, 2},
	ActionLazerExecute:                {ModuleLazer, 3},
}

var actionNames = func() map[actionID]ActionName {
	m := make(map[actionID]ActionName, len(actionIDs))
	for name, id := range actionIDs {
		m[id] = name
	}

	return m
}()

// ActionNames lists every action with a wire binding, ordered by (module, action).
func ActionNames() []ActionName {
	names := make([]ActionName, 0, len(actionIDs))
	for name := range actionIDs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := actionIDs[names[i]], actionIDs[names[j]]
		if a.module != b.module {
			return a.module < b.module
		}

		return a.action < b.action
	})

	return names
}

// Header is the fixed envelope preceding every governance payload.
type Header struct {
	TargetChain types.ChainName `json:"targetChain" yaml:"targetChain"`
	Action      ActionName      `json:"action" yaml:"action"`
}

// NewHeader creates a Header for the given chain and action.
func NewHeader(chain types.ChainName, action ActionName) Header {
	return Header{TargetChain: chain, Action: action}
}

// Module returns the module the header's action belongs to.
func (h Header) Module() (Module, error) {
	id, ok := actionIDs[h.Action]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAction, h.Action)
	}

	return id.module, nil
}

// Encode serializes the header into its 8 byte wire form. It fails only when the
// chain or the action is not registered.
func (h Header) Encode() ([]byte, error) {
	chainID, err := h.TargetChain.ID()
	if err != nil {
		return nil, err
	}
	id, ok := actionIDs[h.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, h.Action)
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	enc := bin.NewBinEncoder(buf)
	if err := enc.WriteUint32(MagicNumber, bin.BE); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(uint8(id.module)); err != nil {
		return nil, err
	}
	if err := enc.WriteUint8(id.action); err != nil {
		return nil, err
	}
	if err := enc.WriteUint16(uint16(chainID), bin.BE); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeHeader parses the leading 8 bytes of data. Any trailing bytes are ignored.
// A short buffer, a wrong magic number, an unregistered chain id or an unmapped
// (module, action) pair all yield an error wrapping ErrInvalidHeader.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidHeader, HeaderSize, len(data))
	}

	dec := bin.NewBinDecoder(data[:HeaderSize])
	magic, err := dec.ReadUint32(bin.BE)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if magic != MagicNumber {
		return Header{}, fmt.Errorf("%w: wrong magic number %08x", ErrInvalidHeader, magic)
	}
	module, err := dec.ReadUint8()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	action, err := dec.ReadUint8()
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	chainID, err := dec.ReadUint16(bin.BE)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	chain, ok := types.ChainID(chainID).Name()
	if !ok {
		return Header{}, fmt.Errorf("%w: unregistered chain id %d", ErrInvalidHeader, chainID)
	}
	name, ok := actionNames[actionID{Module(module), action}]
	if !ok {
		return Header{}, fmt.Errorf("%w: unknown action %d for module %s", ErrInvalidHeader, action, Module(module))
	}

	return Header{TargetChain: chain, Action: name}, nil
}
