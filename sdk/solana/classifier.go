package solana

import (
	"context"
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/pyth-network/governance"
	"github.com/pyth-network/governance/sdk"
	sdkerrors "github.com/pyth-network/governance/sdk/errors"
)

// ProgramTag names a program known to the classifier.
type ProgramTag string

const (
	ProgramUnknown        ProgramTag = "Unknown"
	ProgramSystem         ProgramTag = "SystemProgram"
	ProgramComputeBudget  ProgramTag = "ComputeBudget"
	ProgramWormholeBridge ProgramTag = "WormholeBridge"
	ProgramRemoteExecutor ProgramTag = "RemoteExecutor"
	ProgramSquadsMultisig ProgramTag = "SquadsMultisig"
)

// OperationUnrecognized is the operation of any instruction no decoder understood.
const OperationUnrecognized = "UNRECOGNIZED"

// NamedArg is a decoded instruction argument.
type NamedArg struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Decoded is what a program decoder extracts from instruction data.
type Decoded struct {
	Operation string
	// Accounts names the leading accounts of the instruction, in order.
	Accounts []string
	Args     []NamedArg
	// Payload is an embedded governance message, if the instruction carries one.
	Payload []byte
	// Inner holds instructions wrapped by this one.
	Inner []*solana.GenericInstruction
}

// DecodeFunc decodes an instruction targeting a registered program.
type DecodeFunc func(accounts solana.AccountMetaSlice, data []byte) (Decoded, error)

// ClassifiedInstruction is an instruction interpreted against a known program.
type ClassifiedInstruction struct {
	Program           ProgramTag                     `json:"program"`
	ProgramID         solana.PublicKey               `json:"programId"`
	Operation         string                         `json:"operation"`
	NamedAccounts     map[string]*solana.AccountMeta `json:"namedAccounts,omitempty"`
	RemainingAccounts solana.AccountMetaSlice        `json:"remainingAccounts,omitempty"`
	ArgList           []NamedArg                     `json:"args,omitempty"`
	// Data is the raw instruction data, kept for unrecognized instructions.
	Data []byte `json:"data,omitempty"`
	// Governance is the governance action embedded in the instruction, if any.
	Governance governance.Action `json:"governance,omitempty"`
	// Inner holds the classification of wrapped or relayed instructions.
	Inner []*ClassifiedInstruction `json:"inner,omitempty"`
}

var _ sdk.DecodedOperation = (*ClassifiedInstruction)(nil)

func (c *ClassifiedInstruction) MethodName() string {
	return c.Operation
}

func (c *ClassifiedInstruction) Args() []any {
	args := make([]any, 0, len(c.ArgList))
	for _, arg := range c.ArgList {
		args = append(args, arg.Value)
	}

	return args
}

// Arg returns the argument called name.
func (c *ClassifiedInstruction) Arg(name string) (any, bool) {
	for _, arg := range c.ArgList {
		if arg.Name == name {
			return arg.Value, true
		}
	}

	return nil, false
}

func (c *ClassifiedInstruction) String() (string, string, error) {
	inputMap := make(map[string]any, len(c.ArgList))
	for _, arg := range c.ArgList {
		inputMap[arg.Name] = arg.Value
	}

	byteMap, err := json.MarshalIndent(inputMap, "", "  ")
	if err != nil {
		return "", "", err
	}

	return c.Operation, string(byteMap), nil
}

// Recognized reports whether a decoder understood the instruction.
func (c *ClassifiedInstruction) Recognized() bool {
	return c.Operation != OperationUnrecognized
}

type program struct {
	tag    ProgramTag
	decode DecodeFunc
}

// Classifier maps program ids to decoders. It is safe for concurrent use once
// every program has been registered.
type Classifier struct {
	programs map[solana.PublicKey]program
}

// NewClassifier returns a classifier with no registered program.
func NewClassifier() *Classifier {
	return &Classifier{programs: make(map[solana.PublicKey]program)}
}

// DefaultClassifier returns a classifier for the system and compute budget
// programs and the programs at addrs.
func DefaultClassifier(addrs ProgramAddresses) *Classifier {
	c := NewClassifier()
	c.Register(solana.SystemProgramID, ProgramSystem, DecodeSystemInstruction)
	c.Register(ComputeBudgetProgramID, ProgramComputeBudget, DecodeComputeBudgetInstruction)
	c.Register(addrs.Wormhole, ProgramWormholeBridge, DecodeWormholeInstruction)
	c.Register(addrs.RemoteExecutor, ProgramRemoteExecutor, DecodeRemoteExecutorInstruction)
	c.Register(addrs.Multisig, ProgramSquadsMultisig, DecodeMeshInstruction)

	return c
}

// Register binds programID to decode, replacing any previous binding.
func (c *Classifier) Register(programID solana.PublicKey, tag ProgramTag, decode DecodeFunc) {
	c.programs[programID] = program{tag: tag, decode: decode}
}

// Classify interprets ix. It never fails: an unknown program or undecodable
// data yields an OperationUnrecognized classification carrying the raw data and
// accounts. Embedded governance payloads and wrapped instructions are
// classified recursively; each level is strictly smaller than its parent.
func (c *Classifier) Classify(ctx context.Context, ix *solana.GenericInstruction) *ClassifiedInstruction {
	entry, ok := c.programs[ix.ProgID]
	if !ok {
		return unrecognized(ProgramUnknown, ix)
	}

	decoded, err := entry.decode(ix.AccountValues, ix.DataBytes)
	if err == nil && len(ix.AccountValues) < len(decoded.Accounts) {
		err = sdkerrors.NewAccountCountError(decoded.Operation, len(decoded.Accounts), len(ix.AccountValues))
	}
	if err != nil {
		sdk.LoggerFrom(ctx).Debugf("unable to decode %s instruction: %v", entry.tag, err)
		return unrecognized(entry.tag, ix)
	}

	classified := &ClassifiedInstruction{
		Program:           entry.tag,
		ProgramID:         ix.ProgID,
		Operation:         decoded.Operation,
		NamedAccounts:     make(map[string]*solana.AccountMeta, len(decoded.Accounts)),
		RemainingAccounts: ix.AccountValues[len(decoded.Accounts):],
		ArgList:           decoded.Args,
	}
	for i, name := range decoded.Accounts {
		classified.NamedAccounts[name] = ix.AccountValues[i]
	}

	inner := decoded.Inner
	if decoded.Payload != nil {
		action, err := governance.DecodeAction(decoded.Payload)
		if err != nil {
			sdk.LoggerFrom(ctx).Debugf("no governance action in %s payload: %v", entry.tag, err)
		} else {
			classified.Governance = action
			if relay, ok := action.(governance.ExecutePostedVaa); ok {
				inner = relay.Instructions
			}
		}
	}
	for _, wrapped := range inner {
		classified.Inner = append(classified.Inner, c.Classify(ctx, wrapped))
	}

	return classified
}

var _ sdk.Decoder = (*Classifier)(nil)

// Decode classifies ix and fails when it is not recognized.
func (c *Classifier) Decode(ctx context.Context, ix *solana.GenericInstruction) (sdk.DecodedOperation, error) {
	classified := c.Classify(ctx, ix)
	if !classified.Recognized() {
		return nil, sdkerrors.NewUnrecognizedInstructionError(string(classified.Program), ix.ProgID.String())
	}

	return classified, nil
}

// ClassifyAll classifies every instruction of ixs.
func (c *Classifier) ClassifyAll(ctx context.Context, ixs []*solana.GenericInstruction) []*ClassifiedInstruction {
	out := make([]*ClassifiedInstruction, 0, len(ixs))
	for _, ix := range ixs {
		out = append(out, c.Classify(ctx, ix))
	}

	return out
}

func unrecognized(tag ProgramTag, ix *solana.GenericInstruction) *ClassifiedInstruction {
	return &ClassifiedInstruction{
		Program:           tag,
		ProgramID:         ix.ProgID,
		Operation:         OperationUnrecognized,
		RemainingAccounts: ix.AccountValues,
		Data:              ix.DataBytes,
	}
}
