package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/hogyzen12/squads-go/pkg/multisig"

	"github.com/pyth-network/governance/internal/utils/safecast"
)

var _ AddressDeriver = V4Deriver{}

// V4Deriver derives Squads v4 addresses. Instructions of a v4 vault
// transaction sign with ephemeral signers rather than per-instruction
// authorities.
type V4Deriver struct {
	ProgramID solana.PublicKey
}

func NewV4Deriver(programID solana.PublicKey) V4Deriver {
	return V4Deriver{ProgramID: programID}
}

func (d V4Deriver) ProposalAddress(ms solana.PublicKey, index uint64) (solana.PublicKey, error) {
	pda, _ := multisig.GetTransactionPDA(ms, index, d.ProgramID)
	return pda, nil
}

// VotingAddress returns the proposal account collecting the votes on the
// transaction at index.
func (d V4Deriver) VotingAddress(ms solana.PublicKey, index uint64) solana.PublicKey {
	pda, _ := multisig.GetProposalPDA(ms, index, d.ProgramID)
	return pda
}

func (d V4Deriver) InstructionAuthority(proposal solana.PublicKey, position uint32) (InstructionAuthority, error) {
	idx, err := safecast.IntToUint8(int(position))
	if err != nil {
		return InstructionAuthority{}, fmt.Errorf("ephemeral signer index: %w", err)
	}
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte("multisig"), proposal.Bytes(), []byte("ephemeral_signer"), {idx}}, d.ProgramID)
	if err != nil {
		return InstructionAuthority{}, fmt.Errorf("unable to derive ephemeral signer: %w", err)
	}

	return InstructionAuthority{Address: pda, Bump: bump, Position: position, Type: AuthorityCustom}, nil
}

func (d V4Deriver) VaultAuthority(ms solana.PublicKey, index uint32) (solana.PublicKey, error) {
	idx, err := safecast.IntToUint8(int(index))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("vault index: %w", err)
	}
	pda, _ := multisig.GetVaultPDA(ms, idx, d.ProgramID)

	return pda, nil
}

// MultisigAddress returns the multisig created with createKey.
func (d V4Deriver) MultisigAddress(createKey solana.PublicKey) solana.PublicKey {
	pda, _ := multisig.GetMultisigPDA(createKey, d.ProgramID)
	return pda
}

var _ MultisigReader = (*V4Reader)(nil)

// V4Reader reads Squads v4 multisig accounts from the node at RPCURL.
type V4Reader struct {
	RPCURL string
}

func (r *V4Reader) TransactionIndex(ctx context.Context, ms solana.PublicKey) (uint64, error) {
	info, err := multisig.FetchMultisigInfo(ctx, r.RPCURL, ms)
	if err != nil {
		return 0, fmt.Errorf("unable to fetch multisig %s: %w", ms, err)
	}

	return info.TransactionIndex, nil
}
