package governance

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyth-network/governance/types"
)

func hash32(t *testing.T, s string) [32]byte {
	t.Helper()

	b := common.FromHex(s)
	require.Len(t, b, 32)

	var out [32]byte
	copy(out[:], b)

	return out
}

func systemTransferFixture() *solana.GenericInstruction {
	return solana.NewInstruction(
		solana.SystemProgramID,
		solana.AccountMetaSlice{
			solana.Meta(solana.MustPublicKeyFromBase58("AWQ18oKzd187aM2oMB4YirBcdgX1FgWfukmqEX91BRES")).WRITE().SIGNER(),
			solana.Meta(solana.MustPublicKeyFromBase58("J25GT2knN8V2Wvg9jNrYBuj9SZdsLnU6bK7WCGrL7daj")).WRITE(),
		},
		[]byte{2, 0, 0, 0, 0, 152, 13, 0, 0, 0, 0, 0},
	)
}

func TestAction_EncodeDecode(t *testing.T) {
	t.Parallel()

	var signer264 [33]byte
	copy(signer264[:], common.FromHex("03a4380f01136eb2640f90c17e1e319e02bbafbeef2e6e67dc48af53f9827e155b"))
	var cardanoHash [CardanoScriptHashLength]byte
	copy(cardanoHash[:], common.FromHex("34af787b66e8b108a5d7dd7f912230166079d9f5b30b68cf020f25f2"))

	tests := []struct {
		name string
		give Action
		want []byte
	}{
		{
			name: "SetFee on solana",
			give: SetFee{TargetChain: types.ChainSolana, Value: 42, Expo: 8},
			want: []byte{80, 84, 71, 77, 1, 3, 0, 1, 0, 0, 0, 0, 0, 0, 0, 42, 0, 0, 0, 0, 0, 0, 0, 8},
		},
		{
			name: "SetFee on starknet",
			give: SetFee{TargetChain: types.ChainStarknet, Value: 42, Expo: 8},
			want: []byte{80, 84, 71, 77, 1, 3, 234, 147, 0, 0, 0, 0, 0, 0, 0, 42, 0, 0, 0, 0, 0, 0, 0, 8},
		},
		{
			name: "SetFeeInToken",
			give: SetFeeInToken{
				TargetChain: types.ChainStarknet,
				Value:       42,
				Expo:        8,
				Token:       common.FromHex("049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"),
			},
			want: common.FromHex("5054474d0107ea93" + "000000000000002a" + "0000000000000008" + "20" +
				"049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7"),
		},
		{
			name: "SetTransactionFee",
			give: SetTransactionFee{TargetChain: types.ChainStarknet, Value: 1, Expo: 2},
			want: common.FromHex("5054474d0108ea93" + "0000000000000001" + "0000000000000002"),
		},
		{
			name: "SetValidPeriod",
			give: SetValidPeriod{TargetChain: types.ChainEthereum, NewValidPeriod: 60},
			want: common.FromHex("5054474d01040002" + "000000000000003c"),
		},
		{
			name: "RequestGovernanceDataSourceTransfer",
			give: RequestGovernanceDataSourceTransfer{TargetChain: types.ChainStarknet, GovernanceDataSourceIndex: 1},
			want: []byte{80, 84, 71, 77, 1, 5, 234, 147, 0, 0, 0, 1},
		},
		{
			name: "AuthorizeGovernanceDataSourceTransfer",
			give: AuthorizeGovernanceDataSourceTransfer{TargetChain: types.ChainStarknet, ClaimVaa: []byte{1, 2, 3}},
			want: []byte{80, 84, 71, 77, 1, 1, 234, 147, 1, 2, 3},
		},
		{
			name: "SetDataSources",
			give: SetDataSources{
				TargetChain: types.ChainStarknet,
				DataSources: []DataSource{
					{EmitterChain: 1, EmitterAddress: hash32(t, "6bb14509a612f01fbbc4cffeebd4bbfb492a86df717ebe92eb6df432a3f00a25")},
					{EmitterChain: 3, EmitterAddress: hash32(t, "000000000000000000000000000000000000000000000000000000000000012d")},
				},
			},
			want: common.FromHex("5054474d0102ea93" + "02" +
				"0001" + "6bb14509a612f01fbbc4cffeebd4bbfb492a86df717ebe92eb6df432a3f00a25" +
				"0003" + "000000000000000000000000000000000000000000000000000000000000012d"),
		},
		{
			name: "StarknetSetWormholeAddress",
			give: StarknetSetWormholeAddress{
				TargetChain: types.ChainStarknet,
				Address:     hash32(t, "05033f06d5c47bcce7960ea703b04a0bf64bf33f6f2eb5613496da747522d9c2"),
			},
			want: common.FromHex("5054474d0106ea93" + "05033f06d5c47bcce7960ea703b04a0bf64bf33f6f2eb5613496da747522d9c2"),
		},
		{
			name: "EvmSetWormholeAddress",
			give: EvmSetWormholeAddress{
				TargetChain: types.ChainEthereum,
				Address:     common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"),
			},
			want: common.FromHex("5054474d01060002" + "70997970c51812dc3a010c7d01b50e0d17dc79c8"),
		},
		{
			name: "UpgradeContract256Bit",
			give: UpgradeContract256Bit{
				TargetChain: types.ChainStarknet,
				Hash:        hash32(t, "043d0ed8155263af0862372df3af9403c502358661f317f62fbdc026d03beaee"),
			},
			want: common.FromHex("5054474d0100ea93" + "043d0ed8155263af0862372df3af9403c502358661f317f62fbdc026d03beaee"),
		},
		{
			name: "UpgradeCosmWasmContract",
			give: UpgradeCosmWasmContract{TargetChain: types.ChainInjective, CodeID: 1234},
			want: common.FromHex("5054474d01000013" + "00000000000004d2"),
		},
		{
			name: "UpgradeEvmContract",
			give: UpgradeEvmContract{
				TargetChain:       types.ChainArbitrum,
				NewImplementation: common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"),
			},
			want: common.FromHex("5054474d01000017" + "70997970c51812dc3a010c7d01b50e0d17dc79c8"),
		},
		{
			name: "WithdrawFee",
			give: WithdrawFee{
				TargetChain:   types.ChainEthereum,
				TargetAddress: common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8"),
				Value:         100,
				Expo:          3,
			},
			want: common.FromHex("5054474d01090002" + "70997970c51812dc3a010c7d01b50e0d17dc79c8" +
				"0000000000000064" + "0000000000000003"),
		},
		{
			name: "EvmExecute",
			give: EvmExecute{
				TargetChain:     types.ChainEthereum,
				ExecutorAddress: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
				CallAddress:     common.HexToAddress("0x00000000000000000000000000000000000000bb"),
				Value:           *uint256.NewInt(7),
				CallData:        []byte{0xde, 0xad},
			},
			want: common.FromHex("5054474d02000002" +
				"00000000000000000000000000000000000000aa" +
				"00000000000000000000000000000000000000bb" +
				"0000000000000000000000000000000000000000000000000000000000000007" +
				"dead"),
		},
		{
			name: "UpgradeSuiLazerContract",
			give: UpgradeSuiLazerContract{
				TargetChain: types.ChainSui,
				Version:     1,
				Hash:        hash32(t, "043d0ed8155263af0862372df3af9403c502358661f317f62fbdc026d03beaee"),
			},
			want: common.FromHex("5054474d03000015" + "0000000000000001" +
				"043d0ed8155263af0862372df3af9403c502358661f317f62fbdc026d03beaee"),
		},
		{
			name: "UpgradeCardanoLazerContract",
			give: UpgradeCardanoLazerContract{
				TargetChain: types.ChainCardanoMainnet,
				Script:      CardanoScriptSpend,
				Hash:        cardanoHash,
			},
			want: common.FromHex("5054474d0302eabf" + "01" + "34af787b66e8b108a5d7dd7f912230166079d9f5b30b68cf020f25f2"),
		},
		{
			name: "UpdateTrustedSigner264Bit",
			give: UpdateTrustedSigner264Bit{TargetChain: types.ChainSui, PublicKey: signer264, ExpiresAt: 10794},
			want: common.FromHex("5054474d03010015" +
				"03a4380f01136eb2640f90c17e1e319e02bbafbeef2e6e67dc48af53f9827e155b" + "0000000000002a2a"),
		},
		{
			name: "UpdateTrustedSigner256Bit",
			give: UpdateTrustedSigner256Bit{
				TargetChain: types.ChainCardanoMainnet,
				PublicKey:   hash32(t, "74313a6525edf99936aa1477e94c72bc5cc617b21745f5f03296f3154461f214"),
				ExpiresAt:   10794,
			},
			want: common.FromHex("5054474d0301eabf" +
				"74313a6525edf99936aa1477e94c72bc5cc617b21745f5f03296f3154461f214" + "0000000000002a2a"),
		},
		{
			name: "LazerExecute",
			give: LazerExecute{TargetChain: types.ChainSolana, Directive: []byte{0x0a, 0x02, 0x08, 0x01}},
			want: common.FromHex("5054474d03030001" + "00000004" + "0a020801"),
		},
		{
			name: "ExecutePostedVaa without instructions",
			give: ExecutePostedVaa{TargetChain: types.ChainPythnet},
			want: []byte{80, 84, 71, 77, 0, 0, 0, 26, 0, 0, 0, 0},
		},
		{
			name: "ExecutePostedVaa with a system transfer",
			give: ExecutePostedVaa{
				TargetChain:  types.ChainPythnet,
				Instructions: []*solana.GenericInstruction{systemTransferFixture()},
			},
			want: []byte{
				80, 84, 71, 77, 0, 0, 0, 26, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0,
				0, 0, 141, 65, 8, 219, 216, 57, 229, 94, 74, 17, 138, 50, 121, 176, 38,
				178, 50, 229, 210, 103, 232, 253, 133, 66, 14, 47, 228, 224, 162, 147,
				232, 251, 1, 1, 252, 221, 21, 33, 156, 1, 72, 252, 246, 229, 150, 218,
				109, 165, 127, 11, 165, 252, 140, 6, 121, 57, 204, 91, 119, 165, 106,
				241, 234, 131, 75, 180, 0, 1, 12, 0, 0, 0, 2, 0, 0, 0, 0, 152, 13, 0, 0,
				0, 0, 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.give.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			decoded, err := DecodeAction(got)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(tt.give, decoded, cmpopts.EquateEmpty()))
			assert.Equal(t, tt.give.Header(), decoded.Header())
		})
	}
}

func TestDecodeAction_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    []byte
		wantErr string
	}{
		{
			name:    "bad header",
			give:    []byte{1, 2, 3},
			wantErr: "invalid governance header: need 8 bytes, got 3",
		},
		{
			name:    "truncated SetFee",
			give:    common.FromHex("5054474d01030001" + "000000000000002a"),
			wantErr: "invalid governance payload: SetFee: expo: truncated",
		},
		{
			name:    "SetFee with trailing bytes",
			give:    common.FromHex("5054474d01030001" + "000000000000002a" + "0000000000000008" + "ff"),
			wantErr: "invalid governance payload: SetFee: 1 trailing bytes",
		},
		{
			name:    "UpgradeContract with an odd length",
			give:    common.FromHex("5054474d01000001" + "0102"),
			wantErr: "invalid governance payload: UpgradeContract: unexpected payload length 2",
		},
		{
			name:    "SetDataSources count larger than payload",
			give:    common.FromHex("5054474d01020001" + "05" + "0001"),
			wantErr: "invalid governance payload: SetDataSources: 5 data sources need 170 bytes, have 2",
		},
		{
			name:    "SetFeeInToken token overruns buffer",
			give:    common.FromHex("5054474d01070001" + "0000000000000001" + "0000000000000001" + "10" + "aabb"),
			wantErr: "invalid governance payload: SetFeeInToken: token: need 16 bytes, have 2",
		},
		{
			name:    "Cardano upgrade with unknown script",
			give:    common.FromHex("5054474d0302eabf" + "07" + "34af787b66e8b108a5d7dd7f912230166079d9f5b30b68cf020f25f2"),
			wantErr: "invalid governance payload: UpgradeCardanoLazerContract: unknown script 7",
		},
		{
			name:    "LazerExecute length mismatch",
			give:    common.FromHex("5054474d03030001" + "00000009" + "0a"),
			wantErr: "invalid governance payload: LazerExecute: declared 9 bytes, have 1",
		},
		{
			name:    "ExecutePostedVaa with a huge instruction count",
			give:    common.FromHex("5054474d0000001a" + "ffffffff"),
			wantErr: "invalid governance payload: ExecutePostedVaa: 4294967295 instructions cannot fit in 0 bytes",
		},
		{
			name:    "ExecutePostedVaa missing the instruction count",
			give:    common.FromHex("5054474d0000001a" + "0100"),
			wantErr: "invalid governance payload: ExecutePostedVaa: instruction count: truncated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeAction(tt.give)

			require.EqualError(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeAction_ErrorKinds(t *testing.T) {
	t.Parallel()

	_, err := DecodeAction(common.FromHex("5054474d01030001" + "00"))
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = DecodeAction([]byte{0, 0, 0, 0, 0, 0, 0, 26})
	require.ErrorIs(t, err, ErrInvalidHeader)

	var mismatch *ActionMismatchError
	_, err = DecodeSetFee(common.FromHex("5054474d01040001" + "000000000000003c"))
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, ActionSetFee, mismatch.Expected)
	assert.Equal(t, ActionSetValidPeriod, mismatch.Actual)
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDecodeAction_EveryActionHasADecoder(t *testing.T) {
	t.Parallel()

	for _, name := range ActionNames() {
		_, ok := decoders[name]
		assert.True(t, ok, "no decoder for %s", name)
	}
}

func TestAction_EncodeFailures(t *testing.T) {
	t.Parallel()

	_, err := SetFee{TargetChain: "atlantis"}.Encode()
	require.ErrorIs(t, err, types.ErrUnknownChain)

	_, err = SetFeeInToken{TargetChain: types.ChainSolana, Token: make([]byte, 256)}.Encode()
	require.EqualError(t, err, "field token has length 256, maximum is 255")

	_, err = SetDataSources{TargetChain: types.ChainSolana, DataSources: make([]DataSource, 256)}.Encode()
	var tooLong *FieldTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, "dataSources", tooLong.Field)
}
