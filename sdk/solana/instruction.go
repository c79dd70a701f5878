package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ToGeneric converts any solana-go instruction into the GenericInstruction the
// estimators, builders and classifier operate on.
func ToGeneric(ix solana.Instruction) (*solana.GenericInstruction, error) {
	if generic, ok := ix.(*solana.GenericInstruction); ok {
		return generic, nil
	}

	data, err := ix.Data()
	if err != nil {
		return nil, fmt.Errorf("unable to get instruction data: %w", err)
	}

	return solana.NewInstruction(ix.ProgramID(), ix.Accounts(), data), nil
}

// ToGenerics converts every instruction in ixs with ToGeneric.
func ToGenerics(ixs []solana.Instruction) ([]*solana.GenericInstruction, error) {
	out := make([]*solana.GenericInstruction, 0, len(ixs))
	for i, ix := range ixs {
		generic, err := ToGeneric(ix)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		out = append(out, generic)
	}

	return out, nil
}
