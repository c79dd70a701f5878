package solana

import (
	"github.com/gagliardetto/solana-go"
)

var (
	ComputeBudgetProgramID = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

	DefaultWormholeProgramID       = solana.MustPublicKeyFromBase58("worm2ZoG2kUd4vFXhvjh93UUH596ayRfgQ2MgjNMTth")
	DefaultRemoteExecutorProgramID = solana.MustPublicKeyFromBase58("exe6S3AxPVNmy46L4Nj6HrnnAVQUhwyYzMSNcnRn3qq")
	DefaultMeshProgramID           = solana.MustPublicKeyFromBase58("SMPLecH534NA9acpos4G6x7uf3LWbCAwZQE9e8ZekMu")
	DefaultSquadsV4ProgramID       = solana.MustPublicKeyFromBase58("SQDS4ep65T869zMMBKyuUq6aD6EgTu8psMjkvj52pCf")
)

// ProgramAddresses locates the governance programs on a cluster.
type ProgramAddresses struct {
	Wormhole       solana.PublicKey
	RemoteExecutor solana.PublicKey
	Multisig       solana.PublicKey
}

// DefaultProgramAddresses returns the mainnet-beta deployment.
func DefaultProgramAddresses() ProgramAddresses {
	return ProgramAddresses{
		Wormhole:       DefaultWormholeProgramID,
		RemoteExecutor: DefaultRemoteExecutorProgramID,
		Multisig:       DefaultMeshProgramID,
	}
}
