package solana

import (
	"github.com/gagliardetto/solana-go"
)

// Batch greedily splits items into contiguous batches whose size stays within
// budget. Each batch is the longest prefix of the remaining items that fits; an
// item that does not fit on its own still gets a batch of its own.
func Batch[T any](items []T, budget int, size func([]T) int) [][]T {
	batches := make([][]T, 0)

	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && size(items[start:end+1]) <= budget {
			end++
		}
		batches = append(batches, items[start:end:end])
		start = end
	}

	return batches
}

// BatchIntoTransactions splits ixs into batches that each fit a single transaction.
func BatchIntoTransactions(ixs []*solana.GenericInstruction, packetDataSize int) [][]*solana.GenericInstruction {
	return Batch(ixs, packetDataSize, TransactionSize)
}

// BatchIntoExecutorPayload splits ixs into batches that each fit a single
// remote executor message.
func BatchIntoExecutorPayload(ixs []*solana.GenericInstruction, payloadSize int) [][]*solana.GenericInstruction {
	return Batch(ixs, payloadSize, ExecutorPayloadSize)
}
