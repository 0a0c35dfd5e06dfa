package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/forkcalc/input"
	"github.com/exascience/forkcalc/wordcount"
)

func newWordcountCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "wordcount [path]",
		Short: "Count the words in a file or directory tree",
		Long: `Count the words in a file or in every file below a directory.

A word is a whitespace-separated token containing at least one letter.
Binary files, PDF, DOCX, HTML and image files are skipped. The path is
read interactively from standard input if it is not given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				var err error
				path, err = input.Prompt(cmd.OutOrStdout(), bufio.NewScanner(cmd.InOrStdin()),
					"Enter the path for the file or directory you want:",
					"Enter a non-empty path:",
				)
				if err != nil {
					return err
				}
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.teardown()

			start := time.Now()
			s, err := wordcount.Count(a.pool, path)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			a.log.Info("counted words",
				zap.String("mode", a.mode()),
				zap.String("path", path),
				zap.Int("files", len(s.Files)),
				zap.Int("skipped", s.Skipped()),
				zap.Int("words", s.Total),
				zap.Duration("elapsed", elapsed),
			)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total number of words in %s: %d\n", path, s.Total)
			fmt.Fprintf(out, "Time taken (%s): %d ms\n", a.mode(), elapsed.Milliseconds())
			return nil
		},
	}
}
