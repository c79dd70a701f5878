package xcadmin

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/pyth-network/governance"
	"github.com/pyth-network/governance/types"
)

func buildEncodeCmd() *cobra.Command {
	var chain string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a governance payload",
	}
	cmd.PersistentFlags().StringVar(&chain, "chain", "", "Name of the chain the action targets")
	_ = cmd.MarkPersistentFlagRequired("chain")

	target := func() types.ChainName { return types.ChainName(chain) }

	cmd.AddCommand(buildEncodeSetFeeCmd(target))
	cmd.AddCommand(buildEncodeSetValidPeriodCmd(target))
	cmd.AddCommand(buildEncodeRequestTransferCmd(target))
	cmd.AddCommand(buildEncodeUpgradeContractCmd(target))
	cmd.AddCommand(buildEncodeExecuteCmd(target))

	return cmd
}

func printAction(cmd *cobra.Command, action governance.Action) error {
	data, err := action.Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))

	return err
}

func buildEncodeSetFeeCmd(chain func() types.ChainName) *cobra.Command {
	var value, expo uint64

	cmd := &cobra.Command{
		Use:   "set-fee",
		Short: "Set the update fee to value * 10^expo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printAction(cmd, governance.SetFee{TargetChain: chain(), Value: value, Expo: expo})
		},
	}
	cmd.Flags().Uint64Var(&value, "value", 0, "Fee mantissa")
	cmd.Flags().Uint64Var(&expo, "expo", 0, "Fee exponent")

	return cmd
}

func buildEncodeSetValidPeriodCmd(chain func() types.ChainName) *cobra.Command {
	var seconds uint64

	cmd := &cobra.Command{
		Use:   "set-valid-period",
		Short: "Set the maximum age of accepted price updates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printAction(cmd, governance.SetValidPeriod{TargetChain: chain(), NewValidPeriod: seconds})
		},
	}
	cmd.Flags().Uint64Var(&seconds, "seconds", 0, "Valid period in seconds")
	_ = cmd.MarkFlagRequired("seconds")

	return cmd
}

func buildEncodeRequestTransferCmd(chain func() types.ChainName) *cobra.Command {
	var index uint32

	cmd := &cobra.Command{
		Use:   "request-governance-transfer",
		Short: "Request the transfer of governance to the signing data source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printAction(cmd, governance.RequestGovernanceDataSourceTransfer{
				TargetChain:               chain(),
				GovernanceDataSourceIndex: index,
			})
		},
	}
	cmd.Flags().Uint32Var(&index, "index", 0, "Governance data source index")

	return cmd
}

func buildEncodeUpgradeContractCmd(chain func() types.ChainName) *cobra.Command {
	var (
		codeID  uint64
		address string
		hash    string
	)

	cmd := &cobra.Command{
		Use:   "upgrade-contract",
		Short: "Upgrade a receiver contract to a code id, an EVM implementation or a 32 byte hash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch {
			case cmd.Flags().Changed("code-id"):
				return printAction(cmd, governance.UpgradeCosmWasmContract{TargetChain: chain(), CodeID: codeID})
			case address != "":
				if !common.IsHexAddress(address) {
					return fmt.Errorf("invalid EVM address %q", address)
				}

				return printAction(cmd, governance.UpgradeEvmContract{
					TargetChain:       chain(),
					NewImplementation: common.HexToAddress(address),
				})
			case hash != "":
				b, err := decodeHex(hash)
				if err != nil {
					return fmt.Errorf("invalid hash: %w", err)
				}
				if len(b) != common.HashLength {
					return fmt.Errorf("hash must be %d bytes, got %d", common.HashLength, len(b))
				}

				return printAction(cmd, governance.UpgradeContract256Bit{TargetChain: chain(), Hash: common.BytesToHash(b)})
			default:
				return errors.New("one of --code-id, --address or --hash is required")
			}
		},
	}
	cmd.Flags().Uint64Var(&codeID, "code-id", 0, "CosmWasm code id")
	cmd.Flags().StringVar(&address, "address", "", "EVM implementation address")
	cmd.Flags().StringVar(&hash, "hash", "", "32 byte class or code hash, in hex")
	cmd.MarkFlagsMutuallyExclusive("code-id", "address", "hash")

	return cmd
}

func buildEncodeExecuteCmd(chain func() types.ChainName) *cobra.Command {
	return &cobra.Command{
		Use:   "execute-posted-vaa <instructions.yaml>",
		Short: "Relay Solana instructions to the remote executor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ixs, err := loadInstructions(args[0])
			if err != nil {
				return err
			}

			return printAction(cmd, governance.ExecutePostedVaa{TargetChain: chain(), Instructions: ixs})
		},
	}
}
