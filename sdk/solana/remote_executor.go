package solana

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"

	sdkerrors "github.com/pyth-network/governance/sdk/errors"
)

var (
	executorKeySeed = []byte("EXECUTOR_KEY")
	claimRecordSeed = []byte("CLAIM_RECORD")

	executePostedVaaDiscriminator = anchorDiscriminator("execute_posted_vaa")

	remoteExecutorAccounts = []string{"payer", "postedVaa", "claimRecord", "systemProgram", "executorKey"}
)

// MapKey returns the executor key that signs, on the remote chain, the
// instructions relayed by emitter.
func MapKey(program, emitter solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{executorKeySeed, emitter.Bytes()}, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to derive executor key: %w", err)
	}

	return pda, nil
}

// ClaimRecordPDA returns the account tracking the last sequence executed for emitter.
func ClaimRecordPDA(program, emitter solana.PublicKey) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress([][]byte{claimRecordSeed, emitter.Bytes()}, program)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to derive claim record: %w", err)
	}

	return pda, nil
}

// ExecutorRemainingAccounts lists the accounts the relayed ixs touch, program
// ids included. Nothing is passed as a signer: the executor key signs through
// the program.
func ExecutorRemainingAccounts(ixs []*solana.GenericInstruction) solana.AccountMetaSlice {
	accounts := make(solana.AccountMetaSlice, 0)
	for _, ix := range ixs {
		accounts = append(accounts, solana.Meta(ix.ProgID))
		for _, meta := range ix.AccountValues {
			accounts = append(accounts, solana.NewAccountMeta(meta.PublicKey, meta.IsWritable, false))
		}
	}

	return accounts
}

// NewExecutePostedVaaInstruction replays the instructions of a posted
// governance VAA sent by emitter.
func NewExecutePostedVaaInstruction(
	program, payer, postedVaa, emitter solana.PublicKey, remaining solana.AccountMetaSlice,
) (*solana.GenericInstruction, error) {
	claimRecord, err := ClaimRecordPDA(program, emitter)
	if err != nil {
		return nil, err
	}
	executorKey, err := MapKey(program, emitter)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(postedVaa),
		solana.Meta(claimRecord).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(executorKey).WRITE(),
	}
	accounts = append(accounts, remaining...)

	return solana.NewInstruction(program, accounts, bytes.Clone(executePostedVaaDiscriminator[:])), nil
}

// DecodeRemoteExecutorInstruction decodes executePostedVaa, the only
// instruction of the remote executor.
func DecodeRemoteExecutorInstruction(_ solana.AccountMetaSlice, data []byte) (Decoded, error) {
	if !bytes.Equal(data, executePostedVaaDiscriminator[:]) {
		return Decoded{}, sdkerrors.NewUnknownDiscriminatorError(string(ProgramRemoteExecutor), data)
	}

	return Decoded{Operation: "executePostedVaa", Accounts: remoteExecutorAccounts}, nil
}
