package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/m6a-predict/internal/features"
	"github.com/inodb/m6a-predict/internal/output"
	"github.com/inodb/m6a-predict/internal/predict"
	"github.com/inodb/m6a-predict/internal/scorer"
)

func newPredictCmd() *cobra.Command {
	var (
		inputFormat string
		outputFile  string
		useDuckDB   bool
	)

	cmd := &cobra.Command{
		Use:   "predict [options] <input-file>",
		Short: "Predict m6A status for every row of a feature table",
		Long: `Read a feature table, score every row with the model and write the table
back with predicted_m6A_prob and predicted_m6A_status columns.

Required columns: ` + strings.Join(features.RequiredColumns, ", ") + `

TSV and CSV inputs (optionally gzipped) are read directly. Parquet inputs,
and any input when --duckdb is given, are read through DuckDB.`,
		Example: `  m6a-predict predict --model m6a.yaml sites.tsv
  m6a-predict predict -m m6a.yaml -t 0.6 -o predictions.tsv sites.csv.gz
  m6a-predict predict -m m6a.yaml sites.parquet
  cat sites.tsv | m6a-predict predict -m m6a.yaml -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindPredictorFlags(cmd)

			inputPath := args[0]
			format := inputFormat
			if format == "" {
				format = detectInputFormat(inputPath)
			}

			p, threshold, err := newPredictor()
			if err != nil {
				return err
			}

			tbl, err := loadTable(inputPath, format, useDuckDB)
			if err != nil {
				return err
			}
			logger.Info("loaded feature table",
				zap.String("path", inputPath),
				zap.String("format", format),
				zap.Int("rows", tbl.Len()))

			result, err := p.PredictBatch(cmd.Context(), tbl, threshold)
			if err != nil {
				return err
			}

			var (
				out  io.Writer = os.Stdout
				file *os.File
			)
			if outputFile != "" {
				file, err = os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer file.Close()
				out = file
			}

			w := output.NewTabWriter(out)
			if err := w.WriteTable(result); err != nil {
				return fmt.Errorf("writing predictions: %w", err)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("writing predictions: %w", err)
			}
			if file != nil {
				if err := file.Close(); err != nil {
					return fmt.Errorf("closing output file: %w", err)
				}
			}
			return nil
		},
	}

	addPredictorFlags(cmd)
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format: tsv, csv, parquet (auto-detected if not specified)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&useDuckDB, "duckdb", false, "Read the input through DuckDB")

	return cmd
}

// addPredictorFlags registers the flags shared by predict and single.
func addPredictorFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Logistic model YAML file (default: config key 'model')")
	cmd.Flags().Float64P("threshold", "t", predict.DefaultThreshold, "Probability a site must exceed to be Positive")
	cmd.Flags().Bool("lenient", false, "Score unknown categories and bases as missing instead of failing")
	cmd.Flags().Int("kmer-length", predict.KmerLength, "Declared DNA_5mer length (0 infers it from the first row)")
}

func bindPredictorFlags(cmd *cobra.Command) {
	bindFlag(cmd, "model", "model")
	bindFlag(cmd, "threshold", "threshold")
	bindFlag(cmd, "lenient", "lenient")
	bindFlag(cmd, "kmer_length", "kmer-length")
}

// newPredictor builds a Predictor from the model and options in viper.
func newPredictor() (*predict.Predictor, float64, error) {
	modelPath := viper.GetString("model")
	if modelPath == "" {
		return nil, 0, &usageError{errors.New("no model given; use --model or 'm6a-predict config set model <path>'")}
	}

	model, err := scorer.LoadLogistic(modelPath)
	if err != nil {
		return nil, 0, err
	}
	logger.Debug("loaded model", zap.String("path", modelPath), zap.Int("positions", len(model.Positions)))

	p := predict.NewPredictor(model)
	p.SetLogger(logger)
	p.SetLenient(viper.GetBool("lenient"))
	p.SetKmerLength(viper.GetInt("kmer_length"))

	threshold := viper.GetFloat64("threshold")
	if err := predict.CheckThreshold(threshold); err != nil {
		return nil, 0, &usageError{err}
	}

	return p, threshold, nil
}

// loadTable reads the feature table in the given format.
func loadTable(path, format string, useDuckDB bool) (*features.Table, error) {
	if useDuckDB || format == "parquet" {
		if path == "-" {
			return nil, &usageError{errors.New("DuckDB input requires a file path, not stdin")}
		}
		return features.LoadDuckDB(path)
	}

	switch format {
	case "tsv":
		return features.OpenDelimited(path, '\t')
	case "csv":
		return features.OpenDelimited(path, ',')
	default:
		return nil, &usageError{fmt.Errorf("unknown input format %q; use --input-format tsv, csv or parquet", format)}
	}
}

// detectInputFormat detects the input file format based on extension.
func detectInputFormat(path string) string {
	lowerPath := strings.ToLower(path)
	lowerPath = strings.TrimSuffix(lowerPath, ".gz")

	switch filepath.Ext(lowerPath) {
	case ".parquet":
		return "parquet"
	case ".csv":
		return "csv"
	}
	// Default to TSV, including stdin
	return "tsv"
}
