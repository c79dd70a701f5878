package xcadmin

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pyth-network/governance"
	solanasdk "github.com/pyth-network/governance/sdk/solana"
)

// actionView is the printable form of a governance action.
type actionView struct {
	Module      string            `json:"module"`
	Action      string            `json:"action"`
	TargetChain string            `json:"targetChain"`
	Payload     governance.Action `json:"payload"`
	// Instructions are the relayed instructions of ExecutePostedVaa.
	Instructions []instructionView `json:"instructions,omitempty"`
}

func newActionView(action governance.Action) actionView {
	header := action.Header()
	view := actionView{
		Action:      string(header.Action),
		TargetChain: string(header.TargetChain),
		Payload:     action,
	}
	if module, err := header.Module(); err == nil {
		view.Module = module.String()
	}

	return view
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))

	return err
}

func buildDecodeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a governance payload",
		Long:  `Decode a hex encoded governance payload. Instructions relayed by ExecutePostedVaa are classified.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex(args[0])
			if err != nil {
				return fmt.Errorf("invalid hex payload: %w", err)
			}

			action, err := governance.DecodeAction(data)
			if err != nil {
				return err
			}

			view := newActionView(action)
			if vaa, ok := action.(governance.ExecutePostedVaa); ok {
				programs, err := opts.cfg.ProgramAddresses()
				if err != nil {
					return err
				}
				classifier := solanasdk.DefaultClassifier(programs)
				for _, ix := range classifier.ClassifyAll(cmd.Context(), vaa.Instructions) {
					view.Instructions = append(view.Instructions, newInstructionView(ix))
				}
			}

			return writeJSON(cmd.OutOrStdout(), view)
		},
	}
}
