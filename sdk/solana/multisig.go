package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// AuthorityType selects which key signs an instruction of a proposal when it executes.
type AuthorityType uint8

const (
	// AuthorityDefault signs with the vault authority of the proposal.
	AuthorityDefault AuthorityType = iota
	// AuthorityCustom signs with an authority derived for the instruction.
	AuthorityCustom
)

func (a AuthorityType) String() string {
	switch a {
	case AuthorityDefault:
		return "default"
	case AuthorityCustom:
		return "custom"
	default:
		return fmt.Sprintf("AuthorityType(%d)", uint8(a))
	}
}

// InstructionAuthority is the per-instruction signer of a proposal.
type InstructionAuthority struct {
	Address  solana.PublicKey
	Bump     uint8
	Position uint32
	Type     AuthorityType
}

// AddressDeriver derives multisig addresses. Implementations are pure.
type AddressDeriver interface {
	// ProposalAddress returns the account holding the instructions of proposal index.
	ProposalAddress(multisig solana.PublicKey, index uint64) (solana.PublicKey, error)
	// InstructionAuthority returns the signer of the instruction at position in proposal.
	InstructionAuthority(proposal solana.PublicKey, position uint32) (InstructionAuthority, error)
	// VaultAuthority returns the vault that executes proposals under authority index.
	VaultAuthority(multisig solana.PublicKey, index uint32) (solana.PublicKey, error)
}

// MultisigOps builds the proposal lifecycle instructions of a multisig program.
type MultisigOps interface {
	AddressDeriver

	CreateProposal(
		ctx context.Context, multisig solana.PublicKey, index uint64,
	) (*solana.GenericInstruction, solana.PublicKey, error)
	AddInstruction(
		ctx context.Context, multisig, proposal solana.PublicKey, position uint32,
		ix *solana.GenericInstruction, authority *InstructionAuthority,
	) (*solana.GenericInstruction, error)
	ActivateProposal(ctx context.Context, multisig, proposal solana.PublicKey) (*solana.GenericInstruction, error)
	ApproveProposal(ctx context.Context, multisig, proposal solana.PublicKey) (*solana.GenericInstruction, error)
}

// MultisigReader reads multisig state from the chain.
type MultisigReader interface {
	// TransactionIndex returns the index of the last proposal created on multisig.
	TransactionIndex(ctx context.Context, multisig solana.PublicKey) (uint64, error)
}
