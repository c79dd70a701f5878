package solana

import (
	"context"
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"

	"github.com/pyth-network/governance"
	"github.com/pyth-network/governance/internal/utils/safecast"
	"github.com/pyth-network/governance/sdk"
	sdkerrors "github.com/pyth-network/governance/sdk/errors"
	"github.com/pyth-network/governance/types"
)

// InstructionBuilder accumulates instructions and turns them into the
// instructions creating, filling, activating and approving proposals.
type InstructionBuilder interface {
	AddInstruction(ctx context.Context, ix *solana.GenericInstruction) error
	Build(ctx context.Context) ([]*solana.GenericInstruction, error)
	Proposals() []*ProposalBuilder
}

// AuthorityFactory builds an instruction signed by authority.
type AuthorityFactory func(ctx context.Context, authority InstructionAuthority) (*solana.GenericInstruction, error)

// MultisigVault is a multisig whose vault executes governance proposals.
//
// Proposal indices are allocated locally from the last index read on chain:
// two builders must never be used against the same vault at the same time.
type MultisigVault struct {
	Address solana.PublicKey
	ops     MultisigOps
	reader  MultisigReader
	limits  Limits
}

func NewMultisigVault(address solana.PublicKey, ops MultisigOps, reader MultisigReader, limits Limits) *MultisigVault {
	return &MultisigVault{Address: address, ops: ops, reader: reader, limits: limits}
}

// Limits returns the budgets proposals are built against.
func (v *MultisigVault) Limits() Limits {
	return v.limits
}

// ProposalsBuilder returns a builder numbering proposals after the last one
// created on chain.
func (v *MultisigVault) ProposalsBuilder(ctx context.Context) (*ProposalsBuilder, error) {
	index, err := v.reader.TransactionIndex(ctx, v.Address)
	if err != nil {
		return nil, fmt.Errorf("unable to read transaction index of %s: %w", v.Address, err)
	}

	return NewProposalsBuilder(v, index+1), nil
}

// IxsBuilder returns a builder executing instructions on the vault's own
// cluster, or through the remote executor when remote is set.
func (v *MultisigVault) IxsBuilder(ctx context.Context, remote *RemoteExecutor) (InstructionBuilder, error) {
	if remote != nil {
		return NewRemoteExecutorBuilder(v, *remote), nil
	}

	proposals, err := v.ProposalsBuilder(ctx)
	if err != nil {
		return nil, err
	}

	return NewBatchedBuilder(proposals, v.limits.MaxInstructionsPerProposal), nil
}

// ProposalsBuilder hands out proposals with consecutive indices.
type ProposalsBuilder struct {
	vault     *MultisigVault
	nextIndex uint64
	proposals []*ProposalBuilder
	finalized bool
}

func NewProposalsBuilder(vault *MultisigVault, nextIndex uint64) *ProposalsBuilder {
	return &ProposalsBuilder{vault: vault, nextIndex: nextIndex}
}

// NextIndex returns the index the next proposal will get.
func (b *ProposalsBuilder) NextIndex() uint64 {
	return b.nextIndex
}

// AddProposal creates a proposal with the next index.
func (b *ProposalsBuilder) AddProposal(ctx context.Context) (*ProposalBuilder, error) {
	if b.finalized {
		return nil, sdkerrors.ErrBuilderFinalized
	}

	proposal, err := newProposalBuilder(ctx, b.vault, b.nextIndex)
	if err != nil {
		return nil, err
	}
	b.nextIndex++
	b.proposals = append(b.proposals, proposal)

	sdk.LoggerFrom(ctx).Infof("created proposal %d at %s", proposal.Index(), proposal.Address())

	return proposal, nil
}

func (b *ProposalsBuilder) Proposals() []*ProposalBuilder {
	return slices.Clone(b.proposals)
}

// Build finalizes every proposal and returns their instructions in order.
func (b *ProposalsBuilder) Build(ctx context.Context) ([]*solana.GenericInstruction, error) {
	b.finalized = true

	ixs := make([]*solana.GenericInstruction, 0)
	for _, proposal := range b.proposals {
		built, err := proposal.Build(ctx)
		if err != nil {
			return nil, fmt.Errorf("proposal %d: %w", proposal.Index(), err)
		}
		ixs = append(ixs, built...)
	}

	return ixs, nil
}

// ProposalBuilder fills a single proposal. The creation instruction occupies
// position 0, so the first added instruction sits at position 1.
type ProposalBuilder struct {
	vault        *MultisigVault
	index        uint64
	address      solana.PublicKey
	instructions []*solana.GenericInstruction
	built        []*solana.GenericInstruction
}

func newProposalBuilder(ctx context.Context, vault *MultisigVault, index uint64) (*ProposalBuilder, error) {
	create, address, err := vault.ops.CreateProposal(ctx, vault.Address, index)
	if err != nil {
		return nil, fmt.Errorf("unable to create proposal %d: %w", index, err)
	}

	return &ProposalBuilder{
		vault:        vault,
		index:        index,
		address:      address,
		instructions: []*solana.GenericInstruction{create},
	}, nil
}

func (p *ProposalBuilder) Index() uint64 {
	return p.index
}

func (p *ProposalBuilder) Address() solana.PublicKey {
	return p.address
}

// Len returns the number of instructions added to the proposal.
func (p *ProposalBuilder) Len() int {
	return len(p.instructions) - 1
}

func (p *ProposalBuilder) nextPosition() (uint32, error) {
	if p.built != nil {
		return 0, sdkerrors.ErrBuilderFinalized
	}
	if maxInstructions := p.vault.limits.MaxInstructionsPerProposal; p.Len() >= maxInstructions {
		return 0, sdkerrors.NewTooManyInstructionsError(p.Len()+1, maxInstructions)
	}

	return safecast.IntToUint32(len(p.instructions))
}

// AddInstruction adds ix, executed by the vault authority.
func (p *ProposalBuilder) AddInstruction(ctx context.Context, ix *solana.GenericInstruction) error {
	position, err := p.nextPosition()
	if err != nil {
		return err
	}

	add, err := p.vault.ops.AddInstruction(ctx, p.vault.Address, p.address, position, ix, nil)
	if err != nil {
		return fmt.Errorf("unable to add instruction %d to proposal %d: %w", position, p.index, err)
	}
	p.instructions = append(p.instructions, add)

	return nil
}

// AddInstructionWithAuthority adds the instruction built by factory for the
// authority derived from the proposal address and the instruction position.
func (p *ProposalBuilder) AddInstructionWithAuthority(ctx context.Context, factory AuthorityFactory) error {
	position, err := p.nextPosition()
	if err != nil {
		return err
	}

	authority, err := p.vault.ops.InstructionAuthority(p.address, position)
	if err != nil {
		return err
	}
	ix, err := factory(ctx, authority)
	if err != nil {
		return fmt.Errorf("unable to build instruction %d of proposal %d: %w", position, p.index, err)
	}

	add, err := p.vault.ops.AddInstruction(ctx, p.vault.Address, p.address, position, ix, &authority)
	if err != nil {
		return fmt.Errorf("unable to add instruction %d to proposal %d: %w", position, p.index, err)
	}
	p.instructions = append(p.instructions, add)

	return nil
}

// Build appends the activation and the approval of the proposal. Later calls
// return the same instructions.
func (p *ProposalBuilder) Build(ctx context.Context) ([]*solana.GenericInstruction, error) {
	if p.built != nil {
		return slices.Clone(p.built), nil
	}

	activate, err := p.vault.ops.ActivateProposal(ctx, p.vault.Address, p.address)
	if err != nil {
		return nil, fmt.Errorf("unable to activate proposal %d: %w", p.index, err)
	}
	approve, err := p.vault.ops.ApproveProposal(ctx, p.vault.Address, p.address)
	if err != nil {
		return nil, fmt.Errorf("unable to approve proposal %d: %w", p.index, err)
	}

	p.built = append(slices.Clone(p.instructions), activate, approve)

	return slices.Clone(p.built), nil
}

var _ InstructionBuilder = (*BatchedBuilder)(nil)

// BatchedBuilder spreads instructions over as many proposals as needed,
// starting a new one when the current one holds maxPerProposal instructions.
type BatchedBuilder struct {
	proposals      *ProposalsBuilder
	current        *ProposalBuilder
	maxPerProposal int
}

func NewBatchedBuilder(proposals *ProposalsBuilder, maxPerProposal int) *BatchedBuilder {
	return &BatchedBuilder{proposals: proposals, maxPerProposal: maxPerProposal}
}

func (b *BatchedBuilder) proposal(ctx context.Context) (*ProposalBuilder, error) {
	if b.current == nil || b.current.Len() >= b.maxPerProposal {
		proposal, err := b.proposals.AddProposal(ctx)
		if err != nil {
			return nil, err
		}
		b.current = proposal
	}

	return b.current, nil
}

func (b *BatchedBuilder) AddInstruction(ctx context.Context, ix *solana.GenericInstruction) error {
	proposal, err := b.proposal(ctx)
	if err != nil {
		return err
	}

	return proposal.AddInstruction(ctx, ix)
}

func (b *BatchedBuilder) AddInstructionWithAuthority(ctx context.Context, factory AuthorityFactory) error {
	proposal, err := b.proposal(ctx)
	if err != nil {
		return err
	}

	return proposal.AddInstructionWithAuthority(ctx, factory)
}

func (b *BatchedBuilder) Build(ctx context.Context) ([]*solana.GenericInstruction, error) {
	return b.proposals.Build(ctx)
}

func (b *BatchedBuilder) Proposals() []*ProposalBuilder {
	return b.proposals.Proposals()
}

// RemoteExecutor describes how instructions reach the remote executor: as
// governance messages published on wormhole by a vault authority.
type RemoteExecutor struct {
	WormholeProgramID solana.PublicKey
	// Payer funds the wormhole message fees.
	Payer solana.PublicKey
	// TargetChain is the chain whose remote executor replays the instructions.
	TargetChain types.ChainName
	// EmitterAuthorityIndex selects the vault authority publishing the messages.
	EmitterAuthorityIndex uint32
}

// WrapAsRemoteInstruction returns the postMessage publishing ixs to the remote
// executor. message is the fresh account the wormhole message is stored in.
func WrapAsRemoteInstruction(
	remote RemoteExecutor, emitter, message solana.PublicKey, ixs []*solana.GenericInstruction,
) (*solana.GenericInstruction, error) {
	payload, err := governance.ExecutePostedVaa{TargetChain: remote.TargetChain, Instructions: ixs}.Encode()
	if err != nil {
		return nil, err
	}

	return NewPostMessageInstruction(remote.WormholeProgramID, message, emitter, remote.Payer, PostMessage{
		Payload: payload,
	})
}

var _ InstructionBuilder = (*RemoteExecutorBuilder)(nil)

// RemoteExecutorBuilder relays instructions to the remote executor, packing
// them into as few wormhole messages as the executor payload budget allows.
type RemoteExecutorBuilder struct {
	vault        *MultisigVault
	remote       RemoteExecutor
	instructions []*solana.GenericInstruction
	batched      *BatchedBuilder
}

func NewRemoteExecutorBuilder(vault *MultisigVault, remote RemoteExecutor) *RemoteExecutorBuilder {
	return &RemoteExecutorBuilder{vault: vault, remote: remote}
}

func (b *RemoteExecutorBuilder) AddInstruction(_ context.Context, ix *solana.GenericInstruction) error {
	if b.batched != nil {
		return sdkerrors.ErrBuilderFinalized
	}
	b.instructions = append(b.instructions, ix)

	return nil
}

func (b *RemoteExecutorBuilder) Build(ctx context.Context) ([]*solana.GenericInstruction, error) {
	if b.batched != nil {
		return b.batched.Build(ctx)
	}

	emitter, err := b.vault.ops.VaultAuthority(b.vault.Address, b.remote.EmitterAuthorityIndex)
	if err != nil {
		return nil, err
	}
	proposals, err := b.vault.ProposalsBuilder(ctx)
	if err != nil {
		return nil, err
	}
	batched := NewBatchedBuilder(proposals, b.vault.limits.MaxInstructionsPerProposal)

	batches := BatchIntoExecutorPayload(b.instructions, b.vault.limits.ExecutorPayloadSize)
	for _, batch := range batches {
		err := batched.AddInstructionWithAuthority(ctx,
			func(_ context.Context, authority InstructionAuthority) (*solana.GenericInstruction, error) {
				return WrapAsRemoteInstruction(b.remote, emitter, authority.Address, batch)
			})
		if err != nil {
			return nil, err
		}
	}
	b.batched = batched

	sdk.LoggerFrom(ctx).Infof("relaying %d instructions to %s in %d messages",
		len(b.instructions), b.remote.TargetChain, len(batches))

	return batched.Build(ctx)
}

func (b *RemoteExecutorBuilder) Proposals() []*ProposalBuilder {
	if b.batched == nil {
		return nil
	}

	return b.batched.Proposals()
}
