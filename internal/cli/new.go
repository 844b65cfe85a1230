package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/typings-labs/gentypings/internal/collector"
	"github.com/typings-labs/gentypings/internal/config"
	"github.com/typings-labs/gentypings/internal/pipeline"
	"github.com/typings-labs/gentypings/internal/prompt"
	"github.com/typings-labs/gentypings/internal/provision"
	"github.com/typings-labs/gentypings/internal/scaffold"
	"go.uber.org/zap"
)

var (
	newForce       bool
	newSkipInstall bool
	newFailFast    bool

	newSource        string
	newPublished     bool
	newRegistryName  string
	newAmbient       bool
	newUsername      string
	newLicense       string
	newLicenseAuthor string
)

func init() {
	newCmd.Flags().BoolVar(&newForce, "force", false, "Write into a non-empty directory")
	newCmd.Flags().BoolVar(&newSkipInstall, "skip-install", false, "Only write files; do not run npm, typings or git")
	newCmd.Flags().BoolVar(&newFailFast, "fail-fast", false, "Stop at the first failing install command")

	newCmd.Flags().StringVar(&newSource, "source", "", "Source repository as author/repo")
	newCmd.Flags().BoolVar(&newPublished, "npm", true, "Source package is published on npm")
	newCmd.Flags().StringVar(&newRegistryName, "npm-name", "", "Name of the source package on npm")
	newCmd.Flags().BoolVar(&newAmbient, "ambient", false, "Write an ambient (global) declaration")
	newCmd.Flags().StringVar(&newUsername, "username", "", "Your GitHub username")
	newCmd.Flags().StringVar(&newLicense, "license", "", "License id (see 'licenses')")
	newCmd.Flags().StringVar(&newLicenseAuthor, "license-author", "", "Name printed in LICENSE")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new [dir]",
	Short: "Generate a typings repository",
	Long: `Ask about the source package, write the repository files into dir (default:
the current directory) and run npm install, typings install, npm run build,
git init and git submodule add.

Any question answered by a flag is not asked.

Examples:
  gentypings new typed-react
  gentypings new typed-react --source facebook/react --username octocat --license MIT
  gentypings new . --skip-install`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := "."
		if len(args) == 1 {
			outDir = args[0]
		}
		absDir, err := filepath.Abs(outDir)
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}

		out := cmd.OutOrStdout()

		var mem collector.Memory
		if store, err := config.Load(); err != nil {
			logger.Warn("config unavailable, answers will not be remembered", zap.Error(err))
		} else {
			mem = store
		}

		c := collector.New(prompt.NewLinePrompter(cmd.InOrStdin(), out), mem, logger)
		c.Answers = presetAnswers(cmd)

		m := scaffold.New(logger)
		m.Force = newForce

		p := &pipeline.Pipeline{
			Collector:    c,
			Materializer: m,
			Out:          out,
			Logger:       logger,
			Interrupt:    []os.Signal{os.Interrupt},
		}
		if !newSkipInstall {
			runner := &provision.ExecRunner{Stdout: out, Stderr: cmd.ErrOrStderr()}
			p.Provisioner = provision.New(runner, out, logger)
			if newFailFast {
				p.Provisioner.Policy = provision.FailFast
			}
		}

		_, err = p.Run(cmd.Context(), absDir)
		return err
	},
}

// presetAnswers turns the flags that were set into pre-supplied answers.
func presetAnswers(cmd *cobra.Command) collector.Answers {
	var a collector.Answers
	flags := cmd.Flags()
	if flags.Changed("source") {
		a.Source = &newSource
	}
	if flags.Changed("npm") {
		a.Published = &newPublished
	}
	if flags.Changed("npm-name") {
		a.RegistryName = &newRegistryName
	}
	if flags.Changed("ambient") {
		a.Ambient = &newAmbient
	}
	if flags.Changed("username") {
		a.Username = &newUsername
	}
	if flags.Changed("license") {
		a.License = &newLicense
	}
	if flags.Changed("license-author") {
		a.LicenseAuthor = &newLicenseAuthor
	}
	return a
}
