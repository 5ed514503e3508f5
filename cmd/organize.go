package main

import (
	"fmt"
	"os"
	"path/filepath"

	"member-organizer/internal/diff"
	"member-organizer/internal/service"

	"github.com/spf13/cobra"
)

var (
	writeFlag bool
	diffFlag  bool
	checkFlag bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [files...]",
	Short: "Organize the given files",
	Long: `Organize the given TypeScript files. Without --write, --diff or --check the
organized text is printed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrganize,
}

var organizeAllCmd = &cobra.Command{
	Use:   "organize-all [dir]",
	Short: "Organize every TypeScript file under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOrganizeAll,
}

func init() {
	for _, cmd := range []*cobra.Command{organizeCmd, organizeAllCmd} {
		cmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "write organized files in place")
		cmd.Flags().BoolVarP(&diffFlag, "diff", "d", false, "print a unified diff of each changed file")
		cmd.Flags().BoolVar(&checkFlag, "check", false, "fail when any file is not organized")
	}
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	opts := service.RunOptions{Write: writeFlag, Diff: diffFlag}
	printText := !writeFlag && !diffFlag && !checkFlag

	cwd, _ := os.Getwd()
	var changed, failed int
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", arg, err)
		}
		r := app.organize.OrganizeFile(ctx, path, opts)
		switch r.Status {
		case service.StatusChanged:
			changed++
		case service.StatusFailed:
			failed++
		}

		if printText {
			if r.Err != nil {
				printResult(cmd.ErrOrStderr(), cwd, r)
				continue
			}
			fmt.Fprint(out, r.Text)
			continue
		}
		if r.Diff != "" {
			fmt.Fprint(out, diff.Colorize(r.Diff))
		}
		printResult(cmd.ErrOrStderr(), cwd, r)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	if checkFlag && changed > 0 && !writeFlag {
		return errCheckFailed
	}
	return nil
}

func runOrganizeAll(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}

	summary, err := app.organize.OrganizeAll(cmd.Context(), abs, service.RunOptions{Write: writeFlag, Diff: diffFlag})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range summary.Results {
		if r.Diff != "" {
			fmt.Fprint(out, diff.Colorize(r.Diff))
		}
		printResult(cmd.ErrOrStderr(), abs, r)
	}
	printSummary(cmd.ErrOrStderr(), summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d files failed", summary.Failed)
	}
	if checkFlag && summary.Changed > 0 && !writeFlag {
		return errCheckFailed
	}
	return nil
}
