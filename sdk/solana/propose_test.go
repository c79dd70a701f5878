package solana

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pyth-network/governance"
	"github.com/pyth-network/governance/sdk/solana/mocks"
	"github.com/pyth-network/governance/types"
)

func TestMultisigVault_ProposeInstructions(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	limits := DefaultLimits()
	limits.MaxInstructionsPerProposal = 10
	fx := newVaultFixture(t, 2, limits)
	ixs := uniformInstructions(t, 25, 200)

	var sent [][]*solana.GenericInstruction
	sender := mocks.NewTransactionSender(t)
	sender.EXPECT().SendTransactions(anyContext, mock.Anything).RunAndReturn(
		func(_ context.Context, batches [][]*solana.GenericInstruction) ([]solana.Signature, error) {
			sent = batches
			return make([]solana.Signature, len(batches)), nil
		}).Once()

	addresses, err := fx.vault.ProposeInstructions(ctx, ixs, nil, sender)
	require.NoError(t, err)

	require.Len(t, addresses, 3)
	for i, address := range addresses {
		want, err := fx.mesh.ProposalAddress(fx.multisig, uint64(3+i))
		require.NoError(t, err)
		assert.Equal(t, want, address)
	}

	var flat []*solana.GenericInstruction
	for _, batch := range sent {
		require.NotEmpty(t, batch)
		assert.LessOrEqual(t, TransactionSize(batch), limits.PacketDataSize)
		flat = append(flat, batch...)
	}
	// three proposals of 10, 10 and 5 instructions, each created, activated and approved
	assert.Len(t, flat, 25+3*3)
}

func TestMultisigVault_ProposeInstructionsSendFailure(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	fx := newVaultFixture(t, 0, DefaultLimits())

	sender := mocks.NewTransactionSender(t)
	sender.EXPECT().SendTransactions(anyContext, mock.Anything).Return(nil, errors.New("blockhash not found")).Once()

	_, err := fx.vault.ProposeInstructions(ctx, uniformInstructions(t, 2, 8), nil, sender)
	require.EqualError(t, err, "unable to send proposal transactions: blockhash not found")
}

func TestMultisigVault_ProposeWormholePayload(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	addrs := DefaultProgramAddresses()
	fx := newVaultFixture(t, 7, DefaultLimits())
	remote := RemoteExecutor{
		WormholeProgramID:     addrs.Wormhole,
		Payer:                 randomPublicKey(t),
		TargetChain:           types.ChainSolana,
		EmitterAuthorityIndex: 1,
	}
	payload, err := governance.SetFee{TargetChain: types.ChainSolana, Value: 1, Expo: 3}.Encode()
	require.NoError(t, err)

	var flat []*solana.GenericInstruction
	sender := mocks.NewTransactionSender(t)
	sender.EXPECT().SendTransactions(anyContext, mock.Anything).RunAndReturn(
		func(_ context.Context, batches [][]*solana.GenericInstruction) ([]solana.Signature, error) {
			for _, batch := range batches {
				flat = append(flat, batch...)
			}
			return make([]solana.Signature, len(batches)), nil
		}).Once()

	address, err := fx.vault.ProposeWormholePayload(ctx, payload, remote, sender)
	require.NoError(t, err)

	want, err := fx.mesh.ProposalAddress(fx.multisig, 8)
	require.NoError(t, err)
	assert.Equal(t, want, address)

	require.Len(t, flat, 4)
	add := DefaultClassifier(addrs).Classify(ctx, flat[1])
	require.Equal(t, "addInstruction", add.Operation)
	require.Len(t, add.Inner, 1)
	assert.Equal(t, "postMessage", add.Inner[0].Operation)
	posted, ok := add.Inner[0].Arg("payload")
	require.True(t, ok)
	assert.Equal(t, payload, posted)
	assert.IsType(t, governance.SetFee{}, add.Inner[0].Governance)
}

func TestRPCSender_SendTransactions(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	blockhash := solana.Hash{1, 2, 3}

	client := mocks.NewRPCClient(t)
	client.EXPECT().GetLatestBlockhash(anyContext, rpc.CommitmentFinalized).Return(&rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: blockhash},
	}, nil).Twice()
	client.EXPECT().SendTransactionWithOpts(anyContext, mock.Anything, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentProcessed,
	}).RunAndReturn(func(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
		require.Equal(t, signer.PublicKey(), tx.Message.AccountKeys[0])
		require.Equal(t, blockhash, tx.Message.RecentBlockhash)
		require.NoError(t, tx.VerifySignatures())

		return tx.Signatures[0], nil
	}).Twice()

	batches := [][]*solana.GenericInstruction{
		{systemTransfer(t, 1, signer.PublicKey(), randomPublicKey(t))},
		{
			systemTransfer(t, 2, signer.PublicKey(), randomPublicKey(t)),
			systemTransfer(t, 3, signer.PublicKey(), randomPublicKey(t)),
		},
	}

	signatures, err := NewRPCSender(client, signer).SendTransactions(ctx, batches)
	require.NoError(t, err)
	require.Len(t, signatures, 2)
	assert.NotEqual(t, signatures[0], signatures[1])
}

func TestRPCSender_BlockhashFailure(t *testing.T) {
	t.Parallel()

	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	client := mocks.NewRPCClient(t)
	client.EXPECT().GetLatestBlockhash(anyContext, rpc.CommitmentFinalized).Return(nil, errors.New("timeout")).Once()

	signatures, err := NewRPCSender(client, signer).SendTransactions(testContext(),
		[][]*solana.GenericInstruction{{systemTransfer(t, 1, signer.PublicKey(), randomPublicKey(t))}})
	require.EqualError(t, err, "unable to get latest blockhash: timeout")
	assert.Empty(t, signatures)
}
