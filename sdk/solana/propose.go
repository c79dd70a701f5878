package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/pyth-network/governance/sdk"
)

// TransactionSender submits each batch of instructions as one transaction, in order.
type TransactionSender interface {
	SendTransactions(ctx context.Context, batches [][]*solana.GenericInstruction) ([]solana.Signature, error)
}

// ProposeInstructions builds the proposals executing ixs, on the vault's
// cluster or through remote when set, and sends them with sender. It returns
// the addresses of the proposals.
func (v *MultisigVault) ProposeInstructions(
	ctx context.Context, ixs []*solana.GenericInstruction, remote *RemoteExecutor, sender TransactionSender,
) ([]solana.PublicKey, error) {
	builder, err := v.IxsBuilder(ctx, remote)
	if err != nil {
		return nil, err
	}
	for i, ix := range ixs {
		if err := builder.AddInstruction(ctx, ix); err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	built, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := v.send(ctx, built, sender); err != nil {
		return nil, err
	}

	proposals := builder.Proposals()
	addresses := make([]solana.PublicKey, 0, len(proposals))
	for _, proposal := range proposals {
		addresses = append(addresses, proposal.Address())
	}

	return addresses, nil
}

// ProposeWormholePayload creates a single proposal publishing payload on
// wormhole from the emitter authority of remote, and sends it with sender.
func (v *MultisigVault) ProposeWormholePayload(
	ctx context.Context, payload []byte, remote RemoteExecutor, sender TransactionSender,
) (solana.PublicKey, error) {
	emitter, err := v.ops.VaultAuthority(v.Address, remote.EmitterAuthorityIndex)
	if err != nil {
		return solana.PublicKey{}, err
	}
	proposals, err := v.ProposalsBuilder(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	proposal, err := proposals.AddProposal(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}

	err = proposal.AddInstructionWithAuthority(ctx,
		func(_ context.Context, authority InstructionAuthority) (*solana.GenericInstruction, error) {
			return NewPostMessageInstruction(remote.WormholeProgramID, authority.Address, emitter, remote.Payer,
				PostMessage{Payload: payload})
		})
	if err != nil {
		return solana.PublicKey{}, err
	}

	built, err := proposals.Build(ctx)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := v.send(ctx, built, sender); err != nil {
		return solana.PublicKey{}, err
	}

	return proposal.Address(), nil
}

func (v *MultisigVault) send(ctx context.Context, ixs []*solana.GenericInstruction, sender TransactionSender) error {
	batches := BatchIntoTransactions(ixs, v.limits.PacketDataSize)
	sdk.LoggerFrom(ctx).Infof("sending %d instructions in %d transactions", len(ixs), len(batches))

	if _, err := sender.SendTransactions(ctx, batches); err != nil {
		return fmt.Errorf("unable to send proposal transactions: %w", err)
	}

	return nil
}

// RPCClient is the subset of the RPC client used to submit transactions.
type RPCClient interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
}

var _ TransactionSender = (*RPCSender)(nil)

// RPCSender signs transactions with a single key, which also pays their fees.
type RPCSender struct {
	client RPCClient
	signer solana.PrivateKey
}

func NewRPCSender(client RPCClient, signer solana.PrivateKey) *RPCSender {
	return &RPCSender{client: client, signer: signer}
}

func (s *RPCSender) SendTransactions(
	ctx context.Context, batches [][]*solana.GenericInstruction,
) ([]solana.Signature, error) {
	signer := s.signer.PublicKey()
	signatures := make([]solana.Signature, 0, len(batches))

	for i, batch := range batches {
		latest, err := s.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		if err != nil {
			return signatures, fmt.Errorf("unable to get latest blockhash: %w", err)
		}

		instructions := make([]solana.Instruction, 0, len(batch))
		for _, ix := range batch {
			instructions = append(instructions, ix)
		}
		tx, err := solana.NewTransaction(instructions, latest.Value.Blockhash, solana.TransactionPayer(signer))
		if err != nil {
			return signatures, fmt.Errorf("unable to create transaction %d: %w", i, err)
		}
		_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
			if key.Equals(signer) {
				return &s.signer
			}

			return nil
		})
		if err != nil {
			return signatures, fmt.Errorf("unable to sign transaction %d: %w", i, err)
		}

		signature, err := s.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
			PreflightCommitment: rpc.CommitmentProcessed,
		})
		if err != nil {
			return signatures, fmt.Errorf("unable to send transaction %d: %w", i, err)
		}
		sdk.LoggerFrom(ctx).Debugf("sent transaction %d/%d: %s", i+1, len(batches), signature)
		signatures = append(signatures, signature)
	}

	return signatures, nil
}
