package solana

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyth-network/governance/sdk/solana/mocks"
)

func TestMeshMultisig_Addresses(t *testing.T) {
	t.Parallel()

	mesh := NewMeshMultisig(DefaultMeshProgramID, randomPublicKey(t))
	ms := randomPublicKey(t)

	first, err := mesh.ProposalAddress(ms, 1)
	require.NoError(t, err)
	again, err := mesh.ProposalAddress(ms, 1)
	require.NoError(t, err)
	second, err := mesh.ProposalAddress(ms, 2)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, second)

	_, err = mesh.ProposalAddress(ms, 1<<32)
	require.Error(t, err)

	authority, err := mesh.InstructionAuthority(first, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), authority.Position)
	assert.Equal(t, AuthorityCustom, authority.Type)
	want, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte("squad"), first.Bytes(), {3, 0, 0, 0}, []byte("ix_authority")}, DefaultMeshProgramID)
	require.NoError(t, err)
	assert.Equal(t, want, authority.Address)
	assert.Equal(t, bump, authority.Bump)

	vault, err := mesh.VaultAuthority(ms, 1)
	require.NoError(t, err)
	want, _, err = solana.FindProgramAddress(
		[][]byte{[]byte("squad"), ms.Bytes(), {1, 0, 0, 0}, []byte("authority")}, DefaultMeshProgramID)
	require.NoError(t, err)
	assert.Equal(t, want, vault)

	_, err = mesh.InstructionAddress(first, 256)
	require.Error(t, err)
}

func TestMeshMultisig_LifecycleInstructionsClassify(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	member := randomPublicKey(t)
	mesh := NewMeshMultisig(DefaultMeshProgramID, member)
	ms := randomPublicKey(t)
	classifier := DefaultClassifier(DefaultProgramAddresses())

	create, proposal, err := mesh.CreateProposal(ctx, ms, 9)
	require.NoError(t, err)
	got := classifier.Classify(ctx, create)
	assert.Equal(t, "createTransaction", got.Operation)
	assert.Equal(t, proposal, got.NamedAccounts["transaction"].PublicKey)
	assert.True(t, got.NamedAccounts["creator"].IsSigner)
	authorityIndex, _ := got.Arg("authorityIndex")
	assert.Equal(t, uint32(1), authorityIndex)

	inner := systemTransfer(t, 5, randomPublicKey(t), randomPublicKey(t))
	add, err := mesh.AddInstruction(ctx, ms, proposal, 1, inner, nil)
	require.NoError(t, err)
	got = classifier.Classify(ctx, add)
	assert.Equal(t, "addInstruction", got.Operation)
	authorityType, _ := got.Arg("authorityType")
	assert.Equal(t, "default", authorityType)
	index, _ := got.Arg("authorityIndex")
	assert.Nil(t, index)
	require.Len(t, got.Inner, 1)
	assert.Equal(t, "Transfer", got.Inner[0].Operation)
	instruction, err := mesh.InstructionAddress(proposal, 1)
	require.NoError(t, err)
	assert.Equal(t, instruction, got.NamedAccounts["instruction"].PublicKey)

	authority, err := mesh.InstructionAuthority(proposal, 2)
	require.NoError(t, err)
	add, err = mesh.AddInstruction(ctx, ms, proposal, 2, inner, &authority)
	require.NoError(t, err)
	got = classifier.Classify(ctx, add)
	authorityType, _ = got.Arg("authorityType")
	assert.Equal(t, "custom", authorityType)
	index, _ = got.Arg("authorityIndex")
	assert.Equal(t, ptrTo(uint32(2)), index)
	bump, _ := got.Arg("authorityBump")
	assert.Equal(t, ptrTo(authority.Bump), bump)

	activate, err := mesh.ActivateProposal(ctx, ms, proposal)
	require.NoError(t, err)
	assert.Equal(t, "activateTransaction", classifier.Classify(ctx, activate).Operation)

	approve, err := mesh.ApproveProposal(ctx, ms, proposal)
	require.NoError(t, err)
	got = classifier.Classify(ctx, approve)
	assert.Equal(t, "approveTransaction", got.Operation)
	assert.Equal(t, member, got.NamedAccounts["member"].PublicKey)
}

func TestDecodeMeshInstruction_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    []byte
		wantErr string
	}{
		{
			name:    "short discriminator",
			give:    []byte{1, 2, 3},
			wantErr: "missing anchor discriminator",
		},
		{
			name:    "unknown discriminator",
			give:    []byte{1, 2, 3, 4, 5, 6, 7, 8},
			wantErr: "unknown SquadsMultisig instruction discriminator: 0102030405060708",
		},
		{
			name:    "activate with arguments",
			give:    append(meshActivateTransactionDiscriminator[:], 0),
			wantErr: "unexpected 1 bytes of arguments",
		},
		{
			name:    "create without authority index",
			give:    meshCreateTransactionDiscriminator[:],
			wantErr: "createTransaction: expected 4 bytes of arguments, got 0",
		},
		{
			name:    "add instruction without program id",
			give:    append(meshAddInstructionDiscriminator[:], 1, 2),
			wantErr: "addInstruction: programId: truncated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeMeshInstruction(nil, tt.give)
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestMeshReader_TransactionIndex(t *testing.T) {
	t.Parallel()

	ms := randomPublicKey(t)

	tests := []struct {
		name    string
		setup   func(*mocks.AccountInfoClient)
		want    uint64
		wantErr string
	}{
		{
			name: "success",
			setup: func(client *mocks.AccountInfoClient) {
				mockGetAccountInfo(t, client, ms, meshAccountData(t, 41), nil)
			},
			want: 41,
		},
		{
			name: "rpc failure",
			setup: func(client *mocks.AccountInfoClient) {
				mockGetAccountInfo(t, client, ms, nil, errors.New("connection refused"))
			},
			wantErr: "unable to get account info: connection refused",
		},
		{
			name: "short account",
			setup: func(client *mocks.AccountInfoClient) {
				mockGetAccountInfo(t, client, ms, []byte{1, 2, 3}, nil)
			},
			wantErr: "invalid account data for " + ms.String() + ": need 16 bytes, got 3",
		},
		{
			name: "wrong account type",
			setup: func(client *mocks.AccountInfoClient) {
				mockGetAccountInfo(t, client, ms, make([]byte, 32), nil)
			},
			wantErr: "invalid account data for " + ms.String() + ": not a multisig account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := mocks.NewAccountInfoClient(t)
			tt.setup(client)

			got, err := NewMeshReader(client).TransactionIndex(testContext(), ms)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
