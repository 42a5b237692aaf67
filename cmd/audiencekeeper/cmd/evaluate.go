package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a segment definition file",
	Long: `Validate reads a segment document (JSON, or Avro with --avro) and prints
its normalized JSON form, or every validation error with its location.
Use "-" to read standard input.`,
	RunE: runValidate,
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a segment against a customers file",
	RunE:  runEvaluate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("segment", "", "segment document path")
	validateCmd.Flags().Bool("avro", false, "segment file is Avro encoded")
	_ = validateCmd.MarkFlagRequired("segment")

	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().String("segment", "", "segment document path")
	evaluateCmd.Flags().Bool("avro", false, "segment file is Avro encoded")
	evaluateCmd.Flags().String("customers", "", "customers JSON path")
	evaluateCmd.Flags().Bool("count-only", false, "print only the audience size")
	evaluateCmd.Flags().Int("limit", 0, "stop after this many matches (0 = no limit)")
	_ = evaluateCmd.MarkFlagRequired("segment")
	_ = evaluateCmd.MarkFlagRequired("customers")
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// loadSegment reads and validates the segment named by --segment.
func loadSegment(cmd *cobra.Command) (*segment.CompiledSegment, error) {
	path, _ := cmd.Flags().GetString("segment")
	isAvro, _ := cmd.Flags().GetBool("avro")

	data, err := readInput(cmd, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read segment: %w", err)
	}

	var seg *types.Segment
	if isAvro {
		seg, err = segment.UnmarshalAvro(data)
	} else {
		seg, err = segment.Unmarshal(data)
	}
	if err != nil {
		return nil, err
	}
	return segment.Validate(seg)
}

// reportValidation prints one line per validation error.
func reportValidation(cmd *cobra.Command, err error) error {
	verrs, ok := segment.AsValidationErrors(err)
	if !ok {
		return err
	}
	w := cmd.ErrOrStderr()
	for _, e := range verrs {
		kind := "ValidationError"
		switch {
		case e.IsUnknownField():
			kind = "UnknownFieldError"
		case e.IsCoercion():
			kind = "TypeCoercionError"
		}
		fmt.Fprintf(w, "%s\t%s\n", kind, e.Error())
	}
	return fmt.Errorf("segment has %d validation error(s)", len(verrs))
}

func runValidate(cmd *cobra.Command, args []string) error {
	compiled, err := loadSegment(cmd)
	if err != nil {
		return reportValidation(cmd, err)
	}
	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	return out.Encode(struct {
		Segment segment.Document `json:"segment"`
		Cost    int              `json:"cost"`
	}{segment.NewDocument(compiled.Segment()), compiled.Cost})
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	compiled, err := loadSegment(cmd)
	if err != nil {
		return reportValidation(cmd, err)
	}

	path, _ := cmd.Flags().GetString("customers")
	countOnly, _ := cmd.Flags().GetBool("count-only")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open customers: %w", err)
		}
		defer f.Close()
		r = f
	}
	customers, err := segment.DecodeCustomers(r)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if countOnly {
		n, capped, err := segment.Count(ctx, compiled, slices.Values(customers), limit)
		if err != nil {
			return err
		}
		if capped {
			fmt.Fprintf(cmd.OutOrStdout(), "%d+\n", n)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", n)
		}
		return nil
	}

	matched := 0
	for c := range segment.Filter(compiled, slices.Values(customers)) {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.ID)
		matched++
		if limit > 0 && matched >= limit {
			break
		}
	}
	return nil
}
