package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tradercheck/tradercheck/internal/domain/service"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <score>",
	Short: "Print the risk level for a score",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	score, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("score must be an integer: %w", err)
	}
	if score < 0 {
		return fmt.Errorf("score must not be negative, got %d", score)
	}

	engine, err := service.NewRiskEngine(service.DefaultSeverityScores)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), engine.Classify(score).String())
	return nil
}
