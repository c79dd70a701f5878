package solana

import (
	"github.com/gagliardetto/solana-go"
)

const (
	// DefaultPacketDataSize is the maximum serialized size of a Solana transaction.
	DefaultPacketDataSize = 1232
	// DefaultExecutorOverhead is the space taken in a transaction by the
	// wormhole postMessage wrapping an executor payload.
	DefaultExecutorOverhead = 687
	// DefaultExecutorPayloadSize is the budget left for the relayed instructions.
	DefaultExecutorPayloadSize = DefaultPacketDataSize - DefaultExecutorOverhead
	// DefaultMaxInstructionsPerProposal is one less than the 256 instructions a
	// Squads transaction can index.
	DefaultMaxInstructionsPerProposal = 255

	signatureSize     = 64
	blockhashSize     = 32
	messageHeaderSize = 3
	// executorMetaSize is a pubkey followed by the signer and writable flags.
	executorMetaSize = solana.PublicKeyLength + 2
)

// Limits bundles the byte and instruction budgets of the host chain.
type Limits struct {
	PacketDataSize             int `json:"packetDataSize" yaml:"packetDataSize"`
	ExecutorPayloadSize        int `json:"executorPayloadSize" yaml:"executorPayloadSize"`
	MaxInstructionsPerProposal int `json:"maxInstructionsPerProposal" yaml:"maxInstructionsPerProposal"`
}

// DefaultLimits returns the Solana mainnet limits.
func DefaultLimits() Limits {
	return Limits{
		PacketDataSize:             DefaultPacketDataSize,
		ExecutorPayloadSize:        DefaultExecutorPayloadSize,
		MaxInstructionsPerProposal: DefaultMaxInstructionsPerProposal,
	}
}

// CompactU16Len returns the number of bytes of the shortvec encoding of n.
func CompactU16Len(n int) int {
	switch {
	case n < 0x80:
		return 1
	case n < 0x4000:
		return 2
	default:
		return 3
	}
}

// TransactionSize returns the exact size of a legacy transaction carrying ixs
// once signed. The fee payer is expected to be one of the signers.
func TransactionSize(ixs []*solana.GenericInstruction) int {
	signers := make(map[solana.PublicKey]struct{})
	accounts := make(map[solana.PublicKey]struct{})

	size := 0
	for _, ix := range ixs {
		accounts[ix.ProgID] = struct{}{}
		for _, meta := range ix.AccountValues {
			accounts[meta.PublicKey] = struct{}{}
			if meta.IsSigner {
				signers[meta.PublicKey] = struct{}{}
			}
		}

		size += 1 +
			CompactU16Len(len(ix.AccountValues)) + len(ix.AccountValues) +
			CompactU16Len(len(ix.DataBytes)) + len(ix.DataBytes)
	}

	size += CompactU16Len(len(signers)) + len(signers)*signatureSize
	size += messageHeaderSize
	size += CompactU16Len(len(accounts)) + len(accounts)*solana.PublicKeyLength
	size += blockhashSize
	size += CompactU16Len(len(ixs))

	return size
}

// ExecutorPayloadSize returns the size of ixs in the remote executor layout,
// excluding the leading instruction count.
func ExecutorPayloadSize(ixs []*solana.GenericInstruction) int {
	size := 0
	for _, ix := range ixs {
		size += solana.PublicKeyLength + 4 + len(ix.AccountValues)*executorMetaSize + 4 + len(ix.DataBytes)
	}

	return size
}
