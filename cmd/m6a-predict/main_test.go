package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `intercept: -1
numeric:
  gc_content: 2
rna_type:
  mRNA: 0.5
rna_region:
  "3'UTR": 1
`

const testSites = `site_id	gc_content	RNA_type	RNA_region	exon_length	distance_to_junction	evolutionary_conservation	DNA_5mer
s1	0.5	mRNA	3'UTR	10	8	0.5	GGACA
s2	0.1	lncRNA	intron	230	120	0.12	TGACC
`

func TestDetectInputFormat(t *testing.T) {
	tests := map[string]string{
		"sites.tsv":     "tsv",
		"sites.txt.gz":  "tsv",
		"sites.csv":     "csv",
		"SITES.CSV.GZ":  "csv",
		"sites.parquet": "parquet",
		"-":             "tsv",
		"/data/no_ext":  "tsv",
	}
	for in, want := range tests {
		assert.Equal(t, want, detectInputFormat(in), in)
	}
}

func TestLoadTable_UnknownFormat(t *testing.T) {
	_, err := loadTable("x.tsv", "xlsx", false)
	var ue *usageError
	assert.True(t, errors.As(err, &ue))
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(logConfig{Level: "debug"})
	assert.NoError(t, err)

	l, err := newLogger(logConfig{Level: "info", File: filepath.Join(t.TempDir(), "m6a.log"), MaxSizeMB: 1})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Sync())

	_, err = newLogger(logConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestPredictCommand(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.yaml")
	sitesPath := filepath.Join(dir, "sites.tsv")
	outPath := filepath.Join(dir, "out.tsv")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(testModel), 0644))
	require.NoError(t, os.WriteFile(sitesPath, []byte(testSites), 0644))
	require.NoError(t, os.WriteFile(cfgPath, []byte("lenient: false\n"), 0644))

	root := newRootCmd()
	root.SetArgs([]string{"--config", cfgPath, "predict", "-m", modelPath, "-o", outPath, sitesPath})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "\tpredicted_m6A_prob\tpredicted_m6A_status"))
	// s1: z = -1 + 1 + 0.5 + 1 = 1.5 -> 0.818
	assert.True(t, strings.HasSuffix(lines[1], "\t0.818\tPositive"), lines[1])
	// s2: z = -1 + 0.2 = -0.8 -> 0.31
	assert.True(t, strings.HasSuffix(lines[2], "\t0.31\tNegative"), lines[2])
}

func TestPredictCommand_NoModel(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("threshold: 0.5\n"), 0644))

	root := newRootCmd()
	root.SetArgs([]string{"--config", cfgPath, "predict", filepath.Join(dir, "sites.tsv")})
	err := root.Execute()

	var ue *usageError
	assert.True(t, errors.As(err, &ue))
}

// executeCapture runs the root command with args and returns what it wrote
// to stdout.
func executeCapture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	root := newRootCmd()
	root.SetArgs(args)
	execErr := root.Execute()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), execErr
}

func TestCommands(t *testing.T) {
	// logit(0.7): every sample scores 0.7 after rounding.
	const flatModel = "intercept: 0.8472979\n"

	sampleFlags := []string{
		"--gc-content", "0.5", "--rna-type", "mRNA", "--rna-region", "CDS",
		"--exon-length", "10", "--distance-to-junction", "8",
		"--evolutionary-conservation", "0.5", "--dna-5mer", "GGACA",
	}

	tests := []struct {
		name      string
		args      func(dir string) []string
		wantOut   []string
		wantErr   bool
		wantUsage bool
		check     func(t *testing.T, dir string)
	}{
		{
			name: "single positive",
			args: func(dir string) []string {
				return append([]string{"single", "-m", filepath.Join(dir, "model.yaml")}, sampleFlags...)
			},
			wantOut: []string{"predicted_m6A_prob\tpredicted_m6A_status", "0.7\tPositive"},
		},
		{
			name: "single negative at higher threshold",
			args: func(dir string) []string {
				return append([]string{"single", "-m", filepath.Join(dir, "model.yaml"), "-t", "0.8"}, sampleFlags...)
			},
			wantOut: []string{"0.7\tNegative"},
		},
		{
			name: "single missing feature flag",
			args: func(dir string) []string {
				return []string{"single", "-m", filepath.Join(dir, "model.yaml"), "--gc-content", "0.5"}
			},
			wantErr:   true,
			wantUsage: true,
		},
		{
			name: "single threshold out of range",
			args: func(dir string) []string {
				return append([]string{"single", "-m", filepath.Join(dir, "model.yaml"), "-t", "1.5"}, sampleFlags...)
			},
			wantErr:   true,
			wantUsage: true,
		},
		{
			name: "encode lenient",
			args: func(string) []string {
				return []string{"encode", "--lenient", "GGACA", "ACGUU"}
			},
			wantOut: []string{
				"sequence\tnt_pos1\tnt_pos2\tnt_pos3\tnt_pos4\tnt_pos5",
				"GGACA\tG\tG\tA\tC\tA",
				"ACGUU\tA\tC\tG\tNA\tNA",
			},
		},
		{
			name: "encode strict rejects U",
			args: func(string) []string {
				return []string{"encode", "GGACA", "ACGUU"}
			},
			wantErr: true,
		},
		{
			name: "config set writes only the given key",
			args: func(dir string) []string {
				return []string{"config", "set", "model", "/models/m6a.yaml"}
			},
			wantOut: []string{"Set model = /models/m6a.yaml"},
			check: func(t *testing.T, dir string) {
				data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
				require.NoError(t, err)
				assert.Contains(t, string(data), "model: /models/m6a.yaml")
				assert.Contains(t, string(data), "lenient: false")
				assert.NotContains(t, string(data), "kmer_length")
				assert.NotContains(t, string(data), "threshold")
				assert.NotContains(t, string(data), "log")
			},
		},
		{
			name: "config get",
			args: func(string) []string {
				return []string{"config", "get", "lenient"}
			},
			wantOut: []string{"false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfgPath := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte("lenient: false\n"), 0644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "model.yaml"), []byte(flatModel), 0644))

			out, err := executeCapture(t, append([]string{"--config", cfgPath}, tt.args(dir)...)...)
			if tt.wantErr {
				require.Error(t, err)
				var ue *usageError
				assert.Equal(t, tt.wantUsage, errors.As(err, &ue), err.Error())
				return
			}
			require.NoError(t, err)

			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			if tt.check != nil {
				tt.check(t, dir)
			}
		})
	}
}
