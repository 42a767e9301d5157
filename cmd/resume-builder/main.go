// Command resume-builder drives the iterative resume refinement pipeline:
// rank job-description terms, generate a LaTeX resume draft, score it against
// the quality standards, and revise with feedback until it passes or the
// iteration budget runs out.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	apperrors "github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/generator"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/llm"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/pipeline"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/profile"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/report"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/standards"
)

var version = "dev"

// Process exit codes. Scripted callers branch on these.
const (
	exitPass       = 0
	exitFail       = 1
	exitUsageError = 2
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

type buildOptions struct {
	configPath    string
	jobPath       string
	profilePath   string
	outputDir     string
	maxIterations int
	mock          bool
	verbose       bool
}

func main() {
	if !isTTY() {
		color.NoColor = true
	}
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error: ")+err.Error())
		os.Exit(exitUsageError)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "resume-builder",
		Short:         "Iterative ATS-optimized resume builder",
		Long:          "resume-builder generates a LaTeX resume from a candidate profile,\nscores it against a job description, and refines it until it meets the\nconfigured quality standards.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCommand())
	return root
}

func newBuildCommand() *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the refinement pipeline for one job description",
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runBuild(cmd.Context(), opts)
			if err != nil {
				fmt.Fprintln(os.Stderr, red("Error: ")+err.Error())
			}
			os.Exit(code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.jobPath, "job", "j", "", "path to the job description text file (required)")
	cmd.Flags().StringVarP(&opts.profilePath, "profile", "p", "", "path to the candidate profile YAML (required)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a config YAML file")
	cmd.Flags().StringVarP(&opts.outputDir, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().IntVarP(&opts.maxIterations, "max-iterations", "n", 0, "iteration budget (overrides config)")
	cmd.Flags().BoolVar(&opts.mock, "mock", false, "force the offline mock model")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "echo debug logs to stderr")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func runBuild(parent context.Context, opts *buildOptions) (int, error) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return exitUsageError, err
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.maxIterations > 0 {
		cfg.MaxIterations = opts.maxIterations
	}
	if opts.mock {
		cfg.LLM.Provider = config.ProviderMock
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := logging.Setup(cfg.OutputDir, logging.ParseLevel(cfg.LogLevel), opts.verbose); err != nil {
		return exitUsageError, err
	}
	defer logging.Close()
	logger := logging.NewComponentLogger("cli")

	prof, err := profile.Load(opts.profilePath)
	if err != nil {
		return exitUsageError, err
	}
	jobText, err := os.ReadFile(opts.jobPath)
	if err != nil {
		return exitUsageError, fmt.Errorf("read job description: %w", err)
	}

	client, err := llm.New(cfg, logger)
	if err != nil {
		return exitUsageError, err
	}
	gen := generator.New(client, cfg.LLM, logger)
	controller := pipeline.New(cfg, gen, logger)

	fmt.Printf("%s %s graded against %s\n", bold("resume-builder"), cyan(opts.profilePath), cyan(opts.jobPath))
	fmt.Printf("Model %s, budget %d rounds\n\n", cyan(client.Model()), cfg.MaxIterations)

	result, runErr := controller.Run(ctx, string(jobText), prof)
	if runErr != nil {
		if apperrors.IsInput(runErr) {
			return exitUsageError, runErr
		}
		return exitFail, runErr
	}

	writer := report.NewWriter(cfg, logger)
	dir, err := writer.Write(result)
	if err != nil {
		return exitFail, err
	}

	printOutcome(result, dir)
	if result.FinalStatus == pipeline.StatusPass {
		return exitPass, nil
	}
	return exitFail, nil
}

func printOutcome(result pipeline.ExecutionResult, dir string) {
	for _, rec := range result.Iterations {
		switch {
		case rec.GenerationError != "":
			fmt.Printf("Round %d: %s (%s)\n", rec.Index, red("generation failed"), rec.GenerationError)
		case rec.Decision == standards.DecisionPass:
			fmt.Printf("Round %d: %s ats=%.1f quality=%.0f\n",
				rec.Index, green("PASS"), rec.Compliance.OverallScore, rec.Structure.QualityScore)
		default:
			fmt.Printf("Round %d: %s ats=%.1f quality=%.0f missing=%d\n",
				rec.Index, yellow("CONTINUE"), rec.Compliance.OverallScore,
				rec.Structure.QualityScore, len(rec.Compliance.MissingTerms))
		}
	}

	fmt.Println()
	if result.FinalStatus == pipeline.StatusPass {
		fmt.Println(green(bold("✓ Resume passed all quality standards")))
	} else {
		fmt.Println(red(bold("✗ Iteration budget exhausted without a pass")))
		if last := lastMissing(result); len(last) > 0 {
			fmt.Printf("Still missing: %s\n", yellow(strings.Join(last, ", ")))
		}
	}
	fmt.Printf("Artifacts: %s\n", cyan(dir))
}

func lastMissing(result pipeline.ExecutionResult) []string {
	for i := len(result.Iterations) - 1; i >= 0; i-- {
		if result.Iterations[i].GenerationError == "" {
			missing := result.Iterations[i].Compliance.MissingTerms
			if len(missing) > 6 {
				missing = missing[:6]
			}
			return missing
		}
	}
	return nil
}
