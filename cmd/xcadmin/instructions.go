package xcadmin

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"gopkg.in/yaml.v3"

	solanasdk "github.com/pyth-network/governance/sdk/solana"
)

const (
	encodingHex    = "hex"
	encodingBase58 = "base58"
)

type accountFile struct {
	Pubkey     string `yaml:"pubkey"`
	IsSigner   bool   `yaml:"isSigner"`
	IsWritable bool   `yaml:"isWritable"`
}

type instructionFile struct {
	ProgramID string        `yaml:"programId"`
	Accounts  []accountFile `yaml:"accounts"`
	Data      string        `yaml:"data"`
	// Encoding of Data, hex unless set to base58.
	Encoding string `yaml:"encoding"`
}

type instructionsFile struct {
	Instructions []instructionFile `yaml:"instructions"`
}

func loadInstructions(path string) ([]*solana.GenericInstruction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read instructions: %w", err)
	}

	return parseInstructions(raw)
}

func parseInstructions(raw []byte) ([]*solana.GenericInstruction, error) {
	var file instructionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("unable to parse instructions: %w", err)
	}

	ixs := make([]*solana.GenericInstruction, 0, len(file.Instructions))
	for i, in := range file.Instructions {
		ix, err := in.toInstruction()
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		ixs = append(ixs, ix)
	}

	return ixs, nil
}

func (f instructionFile) toInstruction() (*solana.GenericInstruction, error) {
	programID, err := solana.PublicKeyFromBase58(f.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("programId: %w", err)
	}

	accounts := make(solana.AccountMetaSlice, 0, len(f.Accounts))
	for j, account := range f.Accounts {
		key, err := solana.PublicKeyFromBase58(account.Pubkey)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", j, err)
		}
		accounts = append(accounts, solana.NewAccountMeta(key, account.IsWritable, account.IsSigner))
	}

	data, err := decodeData(f.Data, f.Encoding)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}

	return solana.NewInstruction(programID, accounts, data), nil
}

func decodeData(data, encoding string) ([]byte, error) {
	switch encoding {
	case "", encodingHex:
		return decodeHex(data)
	case encodingBase58:
		return base58.Decode(data)
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// decodeHex accepts hex with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if s == "0x" {
		return []byte{}, nil
	}

	return hexutil.Decode(s)
}

// instructionView is the printable form of a classified instruction.
type instructionView struct {
	Program    string            `json:"program"`
	ProgramID  string            `json:"programId"`
	Operation  string            `json:"operation"`
	Accounts   map[string]string `json:"accounts,omitempty"`
	Remaining  []string          `json:"remainingAccounts,omitempty"`
	Args       map[string]any    `json:"args,omitempty"`
	Data       string            `json:"data,omitempty"`
	Governance *actionView       `json:"governance,omitempty"`
	Inner      []instructionView `json:"inner,omitempty"`
}

func newInstructionView(ix *solanasdk.ClassifiedInstruction) instructionView {
	view := instructionView{
		Program:   string(ix.Program),
		ProgramID: ix.ProgramID.String(),
		Operation: ix.Operation,
	}

	if len(ix.NamedAccounts) > 0 {
		view.Accounts = make(map[string]string, len(ix.NamedAccounts))
		for name, meta := range ix.NamedAccounts {
			view.Accounts[name] = meta.PublicKey.String()
		}
	}
	for _, meta := range ix.RemainingAccounts {
		view.Remaining = append(view.Remaining, meta.PublicKey.String())
	}
	if len(ix.ArgList) > 0 {
		view.Args = make(map[string]any, len(ix.ArgList))
		for _, arg := range ix.ArgList {
			if b, ok := arg.Value.([]byte); ok {
				view.Args[arg.Name] = hexutil.Encode(b)
				continue
			}
			view.Args[arg.Name] = arg.Value
		}
	}
	if !ix.Recognized() {
		view.Data = hexutil.Encode(ix.Data)
	}
	if ix.Governance != nil {
		action := newActionView(ix.Governance)
		view.Governance = &action
	}
	for _, inner := range ix.Inner {
		view.Inner = append(view.Inner, newInstructionView(inner))
	}

	return view
}
