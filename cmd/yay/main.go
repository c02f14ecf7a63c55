// Command yay parses YAY documents from the command line: "yay parse"
// prints the value of one document, "yay check" reports pass/fail for
// many.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yay-lang/yay"
)

// Exit codes
const (
	exitOK          = 0
	exitCheckFailed = 1
	exitIOError     = 2
	exitParseError  = 3
)

func main() {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:           "yay",
		Short:         "Parse YAY documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one document and print its value",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			useColor := shouldUseColor(noColor)

			source, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
				os.Exit(exitIOError)
			}

			v, perr := yay.Parse(source, yay.WithFilename(args[0]))
			if perr != nil {
				fmt.Fprintln(os.Stderr, colorize(perr.Error(), colorRed, useColor))
				os.Exit(exitParseError)
			}

			fmt.Println(v.String())
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse documents and report pass/fail per file",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			useColor := shouldUseColor(noColor)

			passed, failed := 0, 0
			for _, name := range args {
				source, err := os.ReadFile(name)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
					os.Exit(exitIOError)
				}

				if _, perr := yay.Parse(source, yay.WithFilename(name)); perr != nil {
					fmt.Printf("%s %s\n  %s\n", colorize("FAIL", colorRed, useColor), name, perr.Error())
					failed++
				} else {
					fmt.Printf("%s %s\n", colorize("PASS", colorGreen, useColor), name)
					passed++
				}
			}

			fmt.Println(summaryLine(passed, failed))
			if failed > 0 {
				os.Exit(exitCheckFailed)
			}
		},
	}

	rootCmd.AddCommand(parseCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitIOError)
	}
	os.Exit(exitOK)
}

func summaryLine(passed, failed int) string {
	return fmt.Sprintf("%d passed, %d failed", passed, failed)
}
