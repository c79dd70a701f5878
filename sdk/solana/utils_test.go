package solana

import (
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pyth-network/governance/sdk"
	"github.com/pyth-network/governance/sdk/solana/mocks"
)

var anyContext = mock.MatchedBy(func(_ context.Context) bool { return true })

func testContext() context.Context {
	return sdk.WithLogger(context.Background(), zap.NewNop().Sugar())
}

func mockGetAccountInfo(
	t *testing.T, client *mocks.AccountInfoClient, account solana.PublicKey, data []byte, mockError error,
) {
	t.Helper()

	client.EXPECT().GetAccountInfoWithOpts(anyContext, account, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	}).RunAndReturn(func(_ context.Context, _ solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
		if mockError != nil {
			return nil, mockError
		}

		return &rpc.GetAccountInfoResult{Value: &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(data)}}, nil
	}).Once()
}

// meshAccountData encodes the leading fields of a mesh multisig account.
func meshAccountData(t *testing.T, transactionIndex uint32) []byte {
	t.Helper()

	data, err := encodeData(func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(meshAccountDiscriminator[:], false); err != nil {
			return err
		}
		if err := enc.WriteUint16(2, bin.LE); err != nil {
			return err
		}
		if err := enc.WriteUint16(1, bin.LE); err != nil {
			return err
		}
		if err := enc.WriteUint32(transactionIndex, bin.LE); err != nil {
			return err
		}

		return enc.WriteUint32(0, bin.LE)
	})
	require.NoError(t, err)

	return data
}

func randomPublicKey(t *testing.T) solana.PublicKey {
	t.Helper()
	privKey, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	return privKey.PublicKey()
}

func ptrTo[T any](value T) *T { return &value }
