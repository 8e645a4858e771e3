package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/trogers1052/bond-crm-service/internal/config"
	"github.com/trogers1052/bond-crm-service/internal/direction"
	"github.com/trogers1052/bond-crm-service/internal/models"
	"go.uber.org/zap"
)

type classifyOutput struct {
	Direction direction.Direction `json:"direction"`
	Rule      string              `json:"rule,omitempty"`
	Context   string              `json:"context"`
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var transcriptPath, candidatesPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate extracted trade directions against a transcript",
		Long: `Validate reads a transcript and a JSON array of trade candidates,
re-derives each candidate's direction from the transcript and prints the
corrected batch together with every override that was applied.

Example: tradecheck validate --transcript chat.txt --candidates activities.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := buildClassifier(opts)
			if err != nil {
				return err
			}
			transcript, err := readInput(cmd.InOrStdin(), transcriptPath)
			if err != nil {
				return err
			}
			raw, err := readInput(cmd.InOrStdin(), candidatesPath)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), classifier, transcript, raw, opts.logger)
		},
	}

	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "Transcript file (- for stdin)")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "JSON file with the trade candidates")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("candidates")

	return cmd
}

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	var transcriptPath, clientName string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify the trade direction of a client in a transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := buildClassifier(opts)
			if err != nil {
				return err
			}
			transcript, err := readInput(cmd.InOrStdin(), transcriptPath)
			if err != nil {
				return err
			}
			return runClassify(cmd.OutOrStdout(), classifier, transcript, clientName)
		},
	}

	cmd.Flags().StringVar(&transcriptPath, "transcript", "-", "Transcript file (- for stdin)")
	cmd.Flags().StringVar(&clientName, "client", "", "Client name to scope the transcript to")

	return cmd
}

func runValidate(w io.Writer, classifier *direction.Classifier, transcript string, rawCandidates string, logger *zap.Logger) error {
	var candidates []models.TradeCandidate
	if err := json.Unmarshal([]byte(rawCandidates), &candidates); err != nil {
		return fmt.Errorf("failed to parse candidates: %w", err)
	}

	result := direction.NewValidator(classifier).Validate(transcript, candidates)
	for _, c := range result.Corrections {
		logger.Info("Direction corrected",
			zap.Int("candidate", c.CandidateIndex),
			zap.String("client", c.ClientName),
			zap.String("from", c.OriginalDirection),
			zap.String("to", c.CorrectedDirection),
			zap.String("rule", c.Rule))
	}

	return writeJSON(w, result)
}

func runClassify(w io.Writer, classifier *direction.Classifier, transcript, clientName string) error {
	slice := direction.ExtractContext(transcript, clientName)
	d, rule := classifier.Explain(slice)
	return writeJSON(w, classifyOutput{Direction: d, Rule: rule, Context: slice})
}

func buildClassifier(opts *rootOptions) (*direction.Classifier, error) {
	if opts.institutionsFile == "" {
		return direction.NewClassifier(direction.DefaultInstitutions)
	}
	institutions, err := config.ReadInstitutionsFile(opts.institutionsFile)
	if err != nil {
		return nil, err
	}
	opts.logger.Debug("Loaded institutions", zap.Strings("institutions", institutions))
	return direction.NewClassifier(institutions)
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
