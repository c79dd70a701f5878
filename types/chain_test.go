package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainName_ID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    ChainName
		want    ChainID
		wantErr string
	}{
		{
			name: "success: solana",
			give: ChainSolana,
			want: 1,
		},
		{
			name: "success: pythnet",
			give: ChainPythnet,
			want: 26,
		},
		{
			name: "success: starknet",
			give: ChainStarknet,
			want: 0xea93,
		},
		{
			name: "success: cardano mainnet",
			give: ChainCardanoMainnet,
			want: 0xeabf,
		},
		{
			name:    "failure: unknown chain",
			give:    "not-a-chain",
			wantErr: `unknown chain: "not-a-chain"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.give.ID()

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrUnknownChain)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestChainID_Name(t *testing.T) {
	t.Parallel()

	name, ok := ChainID(21).Name()
	require.True(t, ok)
	assert.Equal(t, ChainSui, name)

	_, ok = ChainID(0xffff).Name()
	assert.False(t, ok)
}

func TestChainTable_Bidirectional(t *testing.T) {
	t.Parallel()

	for _, name := range ChainNames() {
		id, err := name.ID()
		require.NoError(t, err)

		back, ok := id.Name()
		require.True(t, ok)
		assert.Equal(t, name, back)
	}
}

func TestRegisterChain(t *testing.T) {
	t.Parallel()

	require.NoError(t, RegisterChain("registry_test_chain", 65001))
	require.NoError(t, RegisterChain("registry_test_chain", 65001), "re-registering the same pair is a no-op")

	id, err := ChainName("registry_test_chain").ID()
	require.NoError(t, err)
	assert.Equal(t, ChainID(65001), id)

	err = RegisterChain("registry_test_chain", 65002)
	require.ErrorIs(t, err, ErrChainConflict)

	err = RegisterChain("registry_test_other", 1)
	require.ErrorIs(t, err, ErrChainConflict)
	require.EqualError(t, err, `chain already registered: id 1 is bound to "solana"`)
}
