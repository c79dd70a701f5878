package solana

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/pyth-network/governance/internal/utils/safecast"
	sdkerrors "github.com/pyth-network/governance/sdk/errors"
)

var (
	meshSeedPrefix = []byte("squad")

	meshCreateTransactionDiscriminator   = anchorDiscriminator("create_transaction")
	meshAddInstructionDiscriminator      = anchorDiscriminator("add_instruction")
	meshActivateTransactionDiscriminator = anchorDiscriminator("activate_transaction")
	meshApproveTransactionDiscriminator  = anchorDiscriminator("approve_transaction")

	meshAccountDiscriminator = anchorAccountDiscriminator("Ms")
)

// meshAccountHeaderSize covers the discriminator, threshold, authority index
// and transaction index of the multisig account.
const meshAccountHeaderSize = 8 + 2 + 2 + 4

var _ MultisigOps = (*MeshMultisig)(nil)

// MeshMultisig builds Squads mesh (v3) instructions on behalf of Member, who
// creates, activates and approves every proposal.
type MeshMultisig struct {
	ProgramID solana.PublicKey
	Member    solana.PublicKey
	// AuthorityIndex is the vault authority proposals execute under.
	AuthorityIndex uint32
}

// NewMeshMultisig returns a MeshMultisig executing under the default vault authority.
func NewMeshMultisig(programID, member solana.PublicKey) *MeshMultisig {
	return &MeshMultisig{ProgramID: programID, Member: member, AuthorityIndex: 1}
}

func u32Seed(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func (m *MeshMultisig) ProposalAddress(multisig solana.PublicKey, index uint64) (solana.PublicKey, error) {
	idx, err := safecast.Uint64ToUint32(index)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("transaction index: %w", err)
	}
	pda, _, err := solana.FindProgramAddress(
		[][]byte{meshSeedPrefix, multisig.Bytes(), u32Seed(idx), []byte("transaction")}, m.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to derive transaction address: %w", err)
	}

	return pda, nil
}

func (m *MeshMultisig) InstructionAuthority(proposal solana.PublicKey, position uint32) (InstructionAuthority, error) {
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{meshSeedPrefix, proposal.Bytes(), u32Seed(position), []byte("ix_authority")}, m.ProgramID)
	if err != nil {
		return InstructionAuthority{}, fmt.Errorf("unable to derive instruction authority: %w", err)
	}

	return InstructionAuthority{Address: pda, Bump: bump, Position: position, Type: AuthorityCustom}, nil
}

func (m *MeshMultisig) VaultAuthority(multisig solana.PublicKey, index uint32) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(
		[][]byte{meshSeedPrefix, multisig.Bytes(), u32Seed(index), []byte("authority")}, m.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to derive vault authority: %w", err)
	}

	return pda, nil
}

// InstructionAddress returns the account storing the instruction at position.
func (m *MeshMultisig) InstructionAddress(proposal solana.PublicKey, position uint32) (solana.PublicKey, error) {
	idx, err := safecast.IntToUint8(int(position))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("instruction position: %w", err)
	}
	pda, _, err := solana.FindProgramAddress(
		[][]byte{meshSeedPrefix, proposal.Bytes(), {idx}, []byte("instruction")}, m.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to derive instruction address: %w", err)
	}

	return pda, nil
}

func (m *MeshMultisig) CreateProposal(
	_ context.Context, multisig solana.PublicKey, index uint64,
) (*solana.GenericInstruction, solana.PublicKey, error) {
	proposal, err := m.ProposalAddress(multisig, index)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	data, err := encodeData(func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(meshCreateTransactionDiscriminator[:], false); err != nil {
			return err
		}

		return enc.WriteUint32(m.AuthorityIndex, bin.LE)
	})
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(multisig).WRITE(),
		solana.Meta(proposal).WRITE(),
		solana.Meta(m.Member).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(m.ProgramID, accounts, data), proposal, nil
}

func (m *MeshMultisig) AddInstruction(
	_ context.Context, multisig, proposal solana.PublicKey, position uint32,
	ix *solana.GenericInstruction, authority *InstructionAuthority,
) (*solana.GenericInstruction, error) {
	instruction, err := m.InstructionAddress(proposal, position)
	if err != nil {
		return nil, err
	}

	data, err := encodeData(func(enc *bin.Encoder) error {
		if err := enc.WriteBytes(meshAddInstructionDiscriminator[:], false); err != nil {
			return err
		}

		return writeIncomingInstruction(enc, ix, authority)
	})
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(multisig),
		solana.Meta(proposal).WRITE(),
		solana.Meta(instruction).WRITE(),
		solana.Meta(m.Member).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	}

	return solana.NewInstruction(m.ProgramID, accounts, data), nil
}

func (m *MeshMultisig) ActivateProposal(
	_ context.Context, multisig, proposal solana.PublicKey,
) (*solana.GenericInstruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.Meta(multisig),
		solana.Meta(proposal).WRITE(),
		solana.Meta(m.Member).WRITE().SIGNER(),
	}

	return solana.NewInstruction(m.ProgramID, accounts, bytes.Clone(meshActivateTransactionDiscriminator[:])), nil
}

func (m *MeshMultisig) ApproveProposal(
	_ context.Context, multisig, proposal solana.PublicKey,
) (*solana.GenericInstruction, error) {
	accounts := solana.AccountMetaSlice{
		solana.Meta(multisig).WRITE(),
		solana.Meta(proposal).WRITE(),
		solana.Meta(m.Member).WRITE().SIGNER(),
	}

	return solana.NewInstruction(m.ProgramID, accounts, bytes.Clone(meshApproveTransactionDiscriminator[:])), nil
}

// writeIncomingInstruction writes ix in the layout add_instruction expects.
// Without an authority the instruction executes under the vault authority.
func writeIncomingInstruction(enc *bin.Encoder, ix *solana.GenericInstruction, authority *InstructionAuthority) error {
	if err := enc.WriteBytes(ix.ProgID[:], false); err != nil {
		return err
	}

	nKeys, err := lengthPrefix("keys", len(ix.AccountValues))
	if err != nil {
		return err
	}
	if err := enc.WriteUint32(nKeys, bin.LE); err != nil {
		return err
	}
	for _, meta := range ix.AccountValues {
		if err := enc.WriteBytes(meta.PublicKey[:], false); err != nil {
			return err
		}
		if err := enc.WriteBool(meta.IsSigner); err != nil {
			return err
		}
		if err := enc.WriteBool(meta.IsWritable); err != nil {
			return err
		}
	}
	if err := writeBytesVec(enc, "data", ix.DataBytes); err != nil {
		return err
	}

	if authority == nil {
		// authority_index and authority_bump are None
		if err := enc.WriteUint8(0); err != nil {
			return err
		}
		if err := enc.WriteUint8(0); err != nil {
			return err
		}

		return enc.WriteUint8(uint8(AuthorityDefault))
	}

	if err := enc.WriteUint8(1); err != nil {
		return err
	}
	if err := enc.WriteUint32(authority.Position, bin.LE); err != nil {
		return err
	}
	if err := enc.WriteUint8(1); err != nil {
		return err
	}
	if err := enc.WriteUint8(authority.Bump); err != nil {
		return err
	}

	return enc.WriteUint8(uint8(authority.Type))
}

func readIncomingInstruction(dec *bin.Decoder) (*solana.GenericInstruction, []NamedArg, error) {
	programID, err := readPublicKey(dec, "programId")
	if err != nil {
		return nil, nil, err
	}

	if dec.Remaining() < 4 {
		return nil, nil, truncatedError("keys")
	}
	nKeys, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, nil, err
	}
	if uint64(nKeys)*executorMetaSize > uint64(dec.Remaining()) {
		return nil, nil, overrunError("keys", nKeys, dec.Remaining())
	}
	keys := make(solana.AccountMetaSlice, 0, nKeys)
	for range nKeys {
		key, err := readPublicKey(dec, "key")
		if err != nil {
			return nil, nil, err
		}
		isSigner, err := dec.ReadBool()
		if err != nil {
			return nil, nil, err
		}
		isWritable, err := dec.ReadBool()
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, solana.NewAccountMeta(key, isWritable, isSigner))
	}

	data, err := readBytesVec(dec, "data")
	if err != nil {
		return nil, nil, err
	}

	var (
		authorityIndex *uint32
		authorityBump  *uint8
	)
	if present, err := readOptionTag(dec, "authorityIndex"); err != nil {
		return nil, nil, err
	} else if present {
		if dec.Remaining() < 4 {
			return nil, nil, truncatedError("authorityIndex")
		}
		v, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return nil, nil, err
		}
		authorityIndex = &v
	}
	if present, err := readOptionTag(dec, "authorityBump"); err != nil {
		return nil, nil, err
	} else if present {
		if dec.Remaining() < 1 {
			return nil, nil, truncatedError("authorityBump")
		}
		v, err := dec.ReadUint8()
		if err != nil {
			return nil, nil, err
		}
		authorityBump = &v
	}
	if dec.Remaining() != 1 {
		return nil, nil, fmt.Errorf("authorityType: expected 1 byte, have %d", dec.Remaining())
	}
	authorityType, err := dec.ReadUint8()
	if err != nil {
		return nil, nil, err
	}
	if AuthorityType(authorityType) > AuthorityCustom {
		return nil, nil, fmt.Errorf("authorityType: unknown value %d", authorityType)
	}

	args := []NamedArg{
		{Name: "programId", Value: programID},
		{Name: "authorityIndex", Value: authorityIndex},
		{Name: "authorityBump", Value: authorityBump},
		{Name: "authorityType", Value: AuthorityType(authorityType).String()},
	}

	return solana.NewInstruction(programID, keys, data), args, nil
}

func readOptionTag(dec *bin.Decoder, field string) (bool, error) {
	if dec.Remaining() < 1 {
		return false, truncatedError(field)
	}
	tag, err := dec.ReadUint8()
	if err != nil {
		return false, err
	}
	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%s: invalid option tag %d", field, tag)
	}
}

// DecodeMeshInstruction decodes the proposal lifecycle instructions of Squads
// mesh. The instruction carried by add_instruction is surfaced as Inner.
func DecodeMeshInstruction(_ solana.AccountMetaSlice, data []byte) (Decoded, error) {
	if len(data) < 8 {
		return Decoded{}, errors.New("missing anchor discriminator")
	}

	var discriminator [8]byte
	copy(discriminator[:], data[:8])
	dec := bin.NewBorshDecoder(data[8:])

	switch discriminator {
	case meshCreateTransactionDiscriminator:
		if dec.Remaining() != 4 {
			return Decoded{}, fmt.Errorf("createTransaction: expected 4 bytes of arguments, got %d", dec.Remaining())
		}
		authorityIndex, err := dec.ReadUint32(bin.LE)
		if err != nil {
			return Decoded{}, err
		}

		return Decoded{
			Operation: "createTransaction",
			Accounts:  []string{"multisig", "transaction", "creator", "systemProgram"},
			Args:      []NamedArg{{Name: "authorityIndex", Value: authorityIndex}},
		}, nil
	case meshAddInstructionDiscriminator:
		ix, args, err := readIncomingInstruction(dec)
		if err != nil {
			return Decoded{}, fmt.Errorf("addInstruction: %w", err)
		}

		return Decoded{
			Operation: "addInstruction",
			Accounts:  []string{"multisig", "transaction", "instruction", "creator", "systemProgram"},
			Args:      args,
			Inner:     []*solana.GenericInstruction{ix},
		}, nil
	case meshActivateTransactionDiscriminator, meshApproveTransactionDiscriminator:
		if dec.Remaining() != 0 {
			return Decoded{}, fmt.Errorf("unexpected %d bytes of arguments", dec.Remaining())
		}
		if discriminator == meshActivateTransactionDiscriminator {
			return Decoded{Operation: "activateTransaction", Accounts: []string{"multisig", "transaction", "creator"}}, nil
		}

		return Decoded{Operation: "approveTransaction", Accounts: []string{"multisig", "transaction", "member"}}, nil
	default:
		return Decoded{}, sdkerrors.NewUnknownDiscriminatorError(string(ProgramSquadsMultisig), data[:8])
	}
}

// AccountInfoClient is the subset of the RPC client used to read accounts.
type AccountInfoClient interface {
	GetAccountInfoWithOpts(
		ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts,
	) (*rpc.GetAccountInfoResult, error)
}

var _ MultisigReader = (*MeshReader)(nil)

// MeshReader reads Squads mesh multisig accounts.
type MeshReader struct {
	client AccountInfoClient
}

func NewMeshReader(client AccountInfoClient) *MeshReader {
	return &MeshReader{client: client}
}

func (r *MeshReader) TransactionIndex(ctx context.Context, multisig solana.PublicKey) (uint64, error) {
	info, err := r.client.GetAccountInfoWithOpts(ctx, multisig, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return 0, fmt.Errorf("unable to get account info: %w", err)
	}
	if info == nil || info.Value == nil {
		return 0, sdkerrors.NewInvalidAccountDataError(multisig.String(), "account not found")
	}

	data := info.Value.Data.GetBinary()
	if len(data) < meshAccountHeaderSize {
		return 0, sdkerrors.NewInvalidAccountDataError(multisig.String(),
			fmt.Sprintf("need %d bytes, got %d", meshAccountHeaderSize, len(data)))
	}
	if !bytes.Equal(data[:8], meshAccountDiscriminator[:]) {
		return 0, sdkerrors.NewInvalidAccountDataError(multisig.String(), "not a multisig account")
	}

	dec := bin.NewBorshDecoder(data[8:meshAccountHeaderSize])
	if _, err := dec.ReadUint16(bin.LE); err != nil { // threshold
		return 0, err
	}
	if _, err := dec.ReadUint16(bin.LE); err != nil { // authority index
		return 0, err
	}
	index, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return 0, err
	}

	return uint64(index), nil
}
