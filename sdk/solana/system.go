package solana

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// DecodeSystemInstruction decodes system program instructions with the
// solana-go system bindings.
func DecodeSystemInstruction(accounts solana.AccountMetaSlice, data []byte) (Decoded, error) {
	inst, err := system.DecodeInstruction(accounts, data)
	if err != nil {
		return Decoded{}, err
	}

	decoded := Decoded{Operation: system.InstructionIDToName(inst.TypeID.Uint32())}
	switch impl := inst.Impl.(type) {
	case *system.Transfer:
		decoded.Accounts = []string{"from", "to"}
		decoded.Args = []NamedArg{{Name: "lamports", Value: deref(impl.Lamports)}}
	case *system.CreateAccount:
		decoded.Accounts = []string{"from", "newAccount"}
		decoded.Args = []NamedArg{
			{Name: "lamports", Value: deref(impl.Lamports)},
			{Name: "space", Value: deref(impl.Space)},
			{Name: "owner", Value: deref(impl.Owner)},
		}
	case *system.Assign:
		decoded.Accounts = []string{"account"}
		decoded.Args = []NamedArg{{Name: "owner", Value: deref(impl.Owner)}}
	case *system.Allocate:
		decoded.Accounts = []string{"account"}
		decoded.Args = []NamedArg{{Name: "space", Value: deref(impl.Space)}}
	}

	return decoded, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}

	return *v
}
