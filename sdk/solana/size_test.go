package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCompactU16Len(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give int
		want int
	}{
		{give: 0, want: 1},
		{give: 127, want: 1},
		{give: 128, want: 2},
		{give: 16383, want: 2},
		{give: 16384, want: 3},
		{give: 65535, want: 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompactU16Len(tt.give), "n=%d", tt.give)
	}
}

// referenceTransactionSize serializes ixs with solana-go, paying with the first
// signer of the first instruction.
func referenceTransactionSize(t require.TestingT, ixs []*solana.GenericInstruction) int {
	var payer solana.PublicKey
	for _, meta := range ixs[0].AccountValues {
		if meta.IsSigner {
			payer = meta.PublicKey
			break
		}
	}

	instructions := make([]solana.Instruction, 0, len(ixs))
	for _, ix := range ixs {
		instructions = append(instructions, ix)
	}

	tx, err := solana.NewTransaction(instructions, solana.Hash{}, solana.TransactionPayer(payer))
	require.NoError(t, err)
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)

	return len(raw)
}

func keyPool(n int) []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, n)
	for i := range n {
		var key solana.PublicKey
		key[0] = byte(i + 1)
		key[31] = 0xaa
		keys = append(keys, key)
	}

	return keys
}

// genTransactionInstructions draws instructions whose first instruction has
// a signer able to pay for the transaction.
func genTransactionInstructions(maxIxs int) *rapid.Generator[[]*solana.GenericInstruction] {
	accounts := keyPool(8)
	var programs []solana.PublicKey
	for _, key := range keyPool(3) {
		key[31] = 0xbb
		programs = append(programs, key)
	}

	return rapid.Custom(func(t *rapid.T) []*solana.GenericInstruction {
		n := rapid.IntRange(1, maxIxs).Draw(t, "instructions")
		ixs := make([]*solana.GenericInstruction, 0, n)
		for i := range n {
			nAccounts := rapid.IntRange(0, 6).Draw(t, "accounts")
			metas := make(solana.AccountMetaSlice, 0, nAccounts+1)
			if i == 0 {
				metas = append(metas, solana.NewAccountMeta(accounts[0], true, true))
			}
			for range nAccounts {
				metas = append(metas, solana.NewAccountMeta(
					rapid.SampledFrom(accounts).Draw(t, "account"),
					rapid.Bool().Draw(t, "writable"),
					rapid.Bool().Draw(t, "signer"),
				))
			}
			data := rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(t, "data")
			ixs = append(ixs, solana.NewInstruction(rapid.SampledFrom(programs).Draw(t, "program"), metas, data))
		}

		return ixs
	})
}

func TestTransactionSize_MatchesSerializer(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		ixs := genTransactionInstructions(6).Draw(t, "ixs")
		require.Equal(t, referenceTransactionSize(t, ixs), TransactionSize(ixs))
	})
}

func TestTransactionSize_Fixed(t *testing.T) {
	t.Parallel()

	keys := keyPool(2)
	payer, program := keys[0], keys[1]
	ix := solana.NewInstruction(program, solana.AccountMetaSlice{solana.Meta(payer).WRITE().SIGNER()}, make([]byte, 120))

	// 1+64 signatures, 3 header, 1+2*32 keys, 32 blockhash, 1 count, 1+1+1+1+120 instruction
	assert.Equal(t, 290, TransactionSize([]*solana.GenericInstruction{ix}))
	assert.Equal(t, referenceTransactionSize(t, []*solana.GenericInstruction{ix}), 290)
}

func TestExecutorPayloadSize(t *testing.T) {
	t.Parallel()

	keys := keyPool(3)
	ixs := []*solana.GenericInstruction{
		solana.NewInstruction(keys[0], nil, nil),
		solana.NewInstruction(keys[1], solana.AccountMetaSlice{
			solana.Meta(keys[0]).SIGNER(),
			solana.Meta(keys[2]).WRITE(),
		}, []byte{1, 2, 3}),
	}

	assert.Equal(t, 0, ExecutorPayloadSize(nil))
	assert.Equal(t, 40, ExecutorPayloadSize(ixs[:1]))
	assert.Equal(t, 40+40+2*34+3, ExecutorPayloadSize(ixs))
}

func TestDefaultLimits(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()
	assert.Equal(t, 1232, limits.PacketDataSize)
	assert.Equal(t, 545, limits.ExecutorPayloadSize)
	assert.Equal(t, 255, limits.MaxInstructionsPerProposal)
}
