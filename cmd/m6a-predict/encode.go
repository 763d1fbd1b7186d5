package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/m6a-predict/internal/nucleotide"
	"github.com/inodb/m6a-predict/internal/output"
)

func newEncodeCmd() *cobra.Command {
	var (
		lenient bool
		length  int
	)

	cmd := &cobra.Command{
		Use:   "encode [options] <sequence>...",
		Short: "Show the positional encoding of DNA sequences",
		Long: `Split equal-length DNA sequences into nt_pos1..nt_posN columns over the
alphabet A, T, C, G. Other symbols (including U) are rejected unless
--lenient is given, in which case they are shown as NA.`,
		Example: `  m6a-predict encode GGACA AGACT
  m6a-predict encode --lenient GGACA ACGUU`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := nucleotide.NewEncoder()
			e.SetLength(length)
			e.SetLenient(lenient)
			e.SetLogger(logger)

			enc, err := e.Encode(args)
			if err != nil {
				return err
			}

			w := output.NewTabWriter(os.Stdout)
			if err := w.WriteEncoding(args, enc); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "Encode symbols outside A/T/C/G as NA instead of failing")
	cmd.Flags().IntVar(&length, "length", 0, "Required sequence length (0 infers it from the first sequence)")

	return cmd
}
