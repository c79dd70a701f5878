package xcadmin

import (
	"github.com/spf13/cobra"

	solanasdk "github.com/pyth-network/governance/sdk/solana"
)

func buildClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <instructions.yaml>",
		Short: "Decode the instructions of a file with the known program decoders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ixs, err := loadInstructions(args[0])
			if err != nil {
				return err
			}
			programs, err := opts.cfg.ProgramAddresses()
			if err != nil {
				return err
			}

			classified := solanasdk.DefaultClassifier(programs).ClassifyAll(cmd.Context(), ixs)
			views := make([]instructionView, 0, len(classified))
			for _, ix := range classified {
				views = append(views, newInstructionView(ix))
			}

			return writeJSON(cmd.OutOrStdout(), views)
		},
	}
}

type batchView struct {
	Instructions int `json:"instructions"`
	Size         int `json:"size"`
}

type batchReport struct {
	Budget  int         `json:"budget"`
	Batches []batchView `json:"batches"`
}

func buildBatchCmd(opts *rootOptions) *cobra.Command {
	var executor bool

	cmd := &cobra.Command{
		Use:   "batch <instructions.yaml>",
		Short: "Pack the instructions of a file into transactions or executor payloads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ixs, err := loadInstructions(args[0])
			if err != nil {
				return err
			}
			limits := opts.cfg.SolanaLimits()

			report := batchReport{Budget: limits.PacketDataSize, Batches: make([]batchView, 0)}
			size := solanasdk.TransactionSize
			batches := solanasdk.BatchIntoTransactions(ixs, limits.PacketDataSize)
			if executor {
				report.Budget = limits.ExecutorPayloadSize
				size = solanasdk.ExecutorPayloadSize
				batches = solanasdk.BatchIntoExecutorPayload(ixs, limits.ExecutorPayloadSize)
			}
			for _, batch := range batches {
				report.Batches = append(report.Batches, batchView{Instructions: len(batch), Size: size(batch)})
			}

			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&executor, "executor", false, "Pack into remote executor payloads instead of transactions")

	return cmd
}
