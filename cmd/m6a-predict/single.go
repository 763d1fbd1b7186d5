package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/m6a-predict/internal/features"
	"github.com/inodb/m6a-predict/internal/output"
)

func newSingleCmd() *cobra.Command {
	var s features.Sample

	cmd := &cobra.Command{
		Use:   "single [options]",
		Short: "Predict m6A status for one site",
		Example: `  m6a-predict single -m m6a.yaml --gc-content 0.5 --rna-type mRNA --rna-region CDS \
    --exon-length 10 --distance-to-junction 8 --evolutionary-conservation 0.5 --dna-5mer GGACA`,
		Args:    usageArgs(cobra.NoArgs),
		PreRunE: requireFlags(
			"gc-content", "rna-type", "rna-region", "exon-length",
			"distance-to-junction", "evolutionary-conservation", "dna-5mer",
		),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindPredictorFlags(cmd)

			p, threshold, err := newPredictor()
			if err != nil {
				return err
			}

			res, err := p.PredictSingle(cmd.Context(), s, threshold)
			if err != nil {
				return err
			}

			w := output.NewTabWriter(os.Stdout)
			if err := w.WriteSingle(res); err != nil {
				return err
			}
			return w.Flush()
		},
	}

	addPredictorFlags(cmd)

	f := cmd.Flags()
	f.Float64Var(&s.GCContent, "gc-content", 0, "GC content of the site window (0-1)")
	f.StringVar(&s.RNAType, "rna-type", "", "RNA type: mRNA, lincRNA, lncRNA, pseudogene")
	f.StringVar(&s.RNARegion, "rna-region", "", "RNA region: CDS, intron, 3'UTR, 5'UTR")
	f.Float64Var(&s.ExonLength, "exon-length", 0, "Length of the containing exon")
	f.Float64Var(&s.DistanceToJunction, "distance-to-junction", 0, "Distance to the nearest splice junction")
	f.Float64Var(&s.EvolutionaryConservation, "evolutionary-conservation", 0, "Conservation score (0-1)")
	f.StringVar(&s.DNA5mer, "dna-5mer", "", "5-mer centred on the candidate site")


	return cmd
}
