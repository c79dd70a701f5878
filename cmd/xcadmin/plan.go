package xcadmin

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"

	"github.com/pyth-network/governance/pkg/config"
	solanasdk "github.com/pyth-network/governance/sdk/solana"
)

const privateKeyEnv = "PRIVATE_KEY"

// loadSigner reads the base58 key of the proposing member from PRIVATE_KEY.
func loadSigner() (solana.PrivateKey, error) {
	pk := os.Getenv(privateKeyEnv)
	if pk == "" {
		return nil, errors.New(privateKeyEnv + " not found in environment or .env file")
	}

	return solana.PrivateKeyFromBase58(pk)
}

// dryRunSender keeps the transactions instead of sending them.
type dryRunSender struct {
	batches [][]*solana.GenericInstruction
}

func (s *dryRunSender) SendTransactions(
	_ context.Context, batches [][]*solana.GenericInstruction,
) ([]solana.Signature, error) {
	s.batches = append(s.batches, batches...)
	return make([]solana.Signature, len(batches)), nil
}

type planReport struct {
	Proposals    []string `json:"proposals"`
	Transactions []int    `json:"transactionSizes,omitempty"`
	Signatures   []string `json:"signatures,omitempty"`
}

// vaultSession is a mesh vault proposed to by member, with the sender
// transactions go through.
type vaultSession struct {
	vault  *solanasdk.MultisigVault
	sender solanasdk.TransactionSender
	dryRun *dryRunSender
	member solana.PublicKey
}

func newVaultSession(cfg *config.Config, send bool) (*vaultSession, error) {
	if cfg.Multisig.Version != config.MultisigVersionMesh {
		return nil, fmt.Errorf("proposals can only be built for %s multisigs", config.MultisigVersionMesh)
	}
	if cfg.Multisig.Address == "" {
		return nil, errors.New("multisig.address is not configured")
	}
	if cfg.RPCURL == "" {
		return nil, errors.New("rpc_url is not configured")
	}
	address, err := solana.PublicKeyFromBase58(cfg.Multisig.Address)
	if err != nil {
		return nil, fmt.Errorf("multisig.address: %w", err)
	}
	programs, err := cfg.ProgramAddresses()
	if err != nil {
		return nil, err
	}

	client := rpc.New(cfg.RPCURL)
	session := &vaultSession{}

	switch {
	case send:
		signer, err := loadSigner()
		if err != nil {
			return nil, err
		}
		session.member = signer.PublicKey()
		session.sender = solanasdk.NewRPCSender(client, signer)
	case cfg.Multisig.Member != "":
		session.member, err = solana.PublicKeyFromBase58(cfg.Multisig.Member)
		if err != nil {
			return nil, fmt.Errorf("multisig.member: %w", err)
		}
	default:
		signer, err := loadSigner()
		if err != nil {
			return nil, fmt.Errorf("multisig.member is not configured: %w", err)
		}
		session.member = signer.PublicKey()
	}
	if session.sender == nil {
		session.dryRun = &dryRunSender{}
		session.sender = session.dryRun
	}

	mesh := solanasdk.NewMeshMultisig(programs.Multisig, session.member)
	mesh.AuthorityIndex = cfg.Multisig.AuthorityIndex
	session.vault = solanasdk.NewMultisigVault(address, mesh, solanasdk.NewMeshReader(client), cfg.SolanaLimits())

	return session, nil
}

func (s *vaultSession) report(proposals []solana.PublicKey) planReport {
	report := planReport{Proposals: make([]string, 0, len(proposals))}
	for _, proposal := range proposals {
		report.Proposals = append(report.Proposals, proposal.String())
	}
	if s.dryRun != nil {
		for _, batch := range s.dryRun.batches {
			report.Transactions = append(report.Transactions, solanasdk.TransactionSize(batch))
		}
	}

	return report
}

func buildPlanCmd(opts *rootOptions) *cobra.Command {
	var remote, send bool

	cmd := &cobra.Command{
		Use:   "plan <instructions.yaml>",
		Short: "Build the proposals executing the instructions of a file",
		Long: `Build the proposals executing the instructions of a file from the configured vault.
With --remote the instructions are relayed to the remote executor of remote.target_chain.
Without --send the transactions are only sized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ixs, err := loadInstructions(args[0])
			if err != nil {
				return err
			}
			session, err := newVaultSession(opts.cfg, send)
			if err != nil {
				return err
			}

			var executor *solanasdk.RemoteExecutor
			if remote {
				relay, err := opts.cfg.RemoteExecutor(session.member)
				if err != nil {
					return err
				}
				executor = &relay
			}

			proposals, err := session.vault.ProposeInstructions(cmd.Context(), ixs, executor, session.sender)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), session.report(proposals))
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "Relay the instructions through the remote executor")
	cmd.Flags().BoolVar(&send, "send", false, "Sign the transactions with PRIVATE_KEY and send them")

	return cmd
}

func buildProposePayloadCmd(opts *rootOptions) *cobra.Command {
	var send bool

	cmd := &cobra.Command{
		Use:   "propose-payload <hex>",
		Short: "Build a proposal publishing a governance payload on wormhole",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodeHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid hex payload: %w", err)
			}
			session, err := newVaultSession(opts.cfg, send)
			if err != nil {
				return err
			}
			relay, err := opts.cfg.RemoteExecutor(session.member)
			if err != nil {
				return err
			}

			proposal, err := session.vault.ProposeWormholePayload(cmd.Context(), payload, relay, session.sender)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), session.report([]solana.PublicKey{proposal}))
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "Sign the transaction with PRIVATE_KEY and send it")

	return cmd
}

type deriveReport struct {
	Multisig       string `json:"multisig"`
	VaultAuthority string `json:"vaultAuthority"`
	Emitter        string `json:"emitter"`
	ExecutorKey    string `json:"executorKey"`
	NextIndex      uint64 `json:"nextIndex,omitempty"`
	NextProposal   string `json:"nextProposal,omitempty"`
}

func buildDeriveCmd(opts *rootOptions) *cobra.Command {
	var index uint64

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print the vault, emitter and executor addresses of the configured multisig",
		Long: `Print the vault, emitter and executor addresses of the configured multisig.
The next proposal address is derived from --index, or from the index read on chain when rpc_url is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if cfg.Multisig.Address == "" {
				return errors.New("multisig.address is not configured")
			}
			address, err := solana.PublicKeyFromBase58(cfg.Multisig.Address)
			if err != nil {
				return fmt.Errorf("multisig.address: %w", err)
			}
			programs, err := cfg.ProgramAddresses()
			if err != nil {
				return err
			}

			var (
				deriver solanasdk.AddressDeriver
				reader  solanasdk.MultisigReader
			)
			switch cfg.Multisig.Version {
			case config.MultisigVersionV4:
				deriver = solanasdk.NewV4Deriver(programs.Multisig)
				reader = &solanasdk.V4Reader{RPCURL: cfg.RPCURL}
			default:
				deriver = solanasdk.NewMeshMultisig(programs.Multisig, solana.PublicKey{})
				reader = solanasdk.NewMeshReader(rpc.New(cfg.RPCURL))
			}

			vault, err := deriver.VaultAuthority(address, cfg.Multisig.AuthorityIndex)
			if err != nil {
				return err
			}
			emitter, err := deriver.VaultAuthority(address, cfg.Remote.EmitterAuthorityIndex)
			if err != nil {
				return err
			}
			executorKey, err := solanasdk.MapKey(programs.RemoteExecutor, emitter)
			if err != nil {
				return err
			}
			report := deriveReport{
				Multisig:       address.String(),
				VaultAuthority: vault.String(),
				Emitter:        emitter.String(),
				ExecutorKey:    executorKey.String(),
			}

			if !cmd.Flags().Changed("index") && cfg.RPCURL != "" {
				last, err := reader.TransactionIndex(cmd.Context(), address)
				if err != nil {
					return err
				}
				index = last + 1
			}
			if index > 0 {
				proposal, err := deriver.ProposalAddress(address, index)
				if err != nil {
					return err
				}
				report.NextIndex = index
				report.NextProposal = proposal.String()
			}

			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().Uint64Var(&index, "index", 0, "Index of the proposal to derive")

	return cmd
}
