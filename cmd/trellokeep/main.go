package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/trellokeep"
	"github.com/deepnoodle-ai/trellokeep/config"
	"github.com/deepnoodle-ai/trellokeep/keep"
	"github.com/deepnoodle-ai/trellokeep/slogger"
	"github.com/deepnoodle-ai/trellokeep/trello"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	successStyle = color.New(color.FgGreen)
	errorStyle   = color.New(color.FgRed)
	boldStyle    = color.New(color.Bold)
	headerStyle  = color.New(color.FgCyan, color.Bold)
	mutedStyle   = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "trellokeep BOARD [LIST...]",
	Short: "Create a Google Keep note from Trello lists",
	Long: `Extract cards from named lists on a Trello board and create a Google Keep
note, as plain text or as a checklist. With --instructions the extracted
items are first filtered and reordered by an LLM.

List name matching is case-insensitive; the note keeps the board's casing.

Examples:
  trellokeep Groceries Lidl Carrefour
  trellokeep Groceries Lidl --format text --title "Saturday run"
  trellokeep Groceries Lidl --instructions "order by store aisle, drop anything already crossed off"
  trellokeep Groceries Lidl --instructions-file aisles.txt --dry-run`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd, args); err != nil {
			fmt.Println(errorStyle.Sprint(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().String("credentials", "", "Path to the credentials file (default \"credentials.json\")")
	rootCmd.Flags().String("config", "", "Path to a settings file (default: nearest .trellokeep.yaml)")
	rootCmd.Flags().String("title", "", "Title of the note (defaults to the board name)")
	rootCmd.Flags().StringP("format", "f", "", "Note format: \"checklist\" or \"text\" (default \"checklist\")")
	rootCmd.Flags().StringP("instructions", "i", "", "Filtering/reordering instructions for the LLM")
	rootCmd.Flags().String("instructions-file", "", "Read filtering/reordering instructions from a file")
	rootCmd.Flags().String("impersonate", "", "Email of the user to impersonate when creating the note")
	rootCmd.Flags().String("provider", "", "LLM provider: \"anthropic\", \"openai\", or \"google\"")
	rootCmd.Flags().StringP("model", "m", "", "Model to use for the transform stage")
	rootCmd.Flags().Bool("dry-run", false, "Print the rendered note instead of creating it")
	rootCmd.Flags().String("log-level", "", "Log level: debug, info, warn, or error (default \"warn\")")
}

type runOptions struct {
	board        string
	lists        []string
	title        string
	format       trellokeep.Format
	instructions string
	credentials  string
	impersonate  string
	provider     string
	model        string
	dryRun       bool
	logLevel     string
}

// resolveOptions merges flags, positional args, and the optional settings
// file. Flags and args win over settings.
func resolveOptions(cmd *cobra.Command, args []string) (*runOptions, error) {
	settingsPath, _ := cmd.Flags().GetString("config")
	if settingsPath == "" {
		settingsPath = config.FindSettings()
	}
	settings := &config.Settings{}
	if settingsPath != "" {
		loaded, err := config.LoadSettings(settingsPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	opts := &runOptions{
		board: args[0],
		lists: args[1:],
	}
	if len(opts.lists) == 0 {
		opts.lists = settings.Lists
	}
	if len(opts.lists) == 0 {
		return nil, fmt.Errorf("no lists specified (pass list names after the board, or set \"lists\" in %s)", config.SettingsFileName)
	}

	opts.title = firstOf(flagString(cmd, "title"), settings.Title)
	opts.credentials = firstOf(flagString(cmd, "credentials"), settings.Credentials, config.DefaultCredentialsPath)
	opts.impersonate = firstOf(flagString(cmd, "impersonate"), settings.Impersonate)
	opts.provider = firstOf(flagString(cmd, "provider"), settings.Provider)
	opts.model = firstOf(flagString(cmd, "model"), settings.Model)
	opts.logLevel = firstOf(flagString(cmd, "log-level"), settings.LogLevel, "warn")
	opts.dryRun, _ = cmd.Flags().GetBool("dry-run")

	format, err := trellokeep.ParseFormat(firstOf(flagString(cmd, "format"), settings.Format, "checklist"))
	if err != nil {
		return nil, err
	}
	opts.format = format

	opts.instructions = firstOf(flagString(cmd, "instructions"), settings.Instructions)
	if path := flagString(cmd, "instructions-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading instructions file: %w", err)
		}
		opts.instructions = strings.TrimSpace(string(data))
	}
	return opts, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return err
	}

	logger := slogger.New(slogger.LevelFromString(opts.logLevel))
	ctx = slogger.WithLogger(ctx, logger)

	creds, err := config.LoadCredentials(opts.credentials)
	if err != nil {
		return err
	}

	source, err := trello.New(
		trello.WithAPIKey(creds.Trello.APIKey),
		trello.WithToken(creds.Trello.Token),
		trello.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	var transformer *trellokeep.Transformer
	if opts.instructions != "" {
		model, err := config.GetModel(opts.provider, opts.model)
		if err != nil {
			return err
		}
		transformer = trellokeep.NewTransformer(model,
			trellokeep.WithTransformLogger(logger))
	}

	if opts.dryRun {
		pipeline, err := trellokeep.NewPipeline(trellokeep.PipelineOptions{
			Source:      source,
			Transformer: transformer,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		result, err := pipeline.Build(ctx, buildRunOptions(opts))
		if err != nil {
			return err
		}
		printPreview(result)
		return nil
	}

	subject := opts.impersonate
	if subject == "" {
		subject = creds.ImpersonatedUserEmail
	}
	keepOpts := []keep.Option{
		keep.WithClientEmail(creds.ClientEmail),
		keep.WithPrivateKey(creds.PrivateKey),
		keep.WithLogger(logger),
	}
	if subject != "" {
		keepOpts = append(keepOpts, keep.WithSubject(subject))
	}
	if creds.TokenURI != "" {
		keepOpts = append(keepOpts, keep.WithTokenURL(creds.TokenURI))
	}
	notes, err := keep.New(keepOpts...)
	if err != nil {
		return err
	}

	pipeline, err := trellokeep.NewPipeline(trellokeep.PipelineOptions{
		Source:      source,
		Notes:       notes,
		Transformer: transformer,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	note, err := pipeline.Run(ctx, buildRunOptions(opts))
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Sprintf("Google Keep note created: %q (%s)", note.Title, note.Name))
	return nil
}

func buildRunOptions(opts *runOptions) trellokeep.RunOptions {
	return trellokeep.RunOptions{
		Board:        opts.board,
		Lists:        opts.lists,
		Title:        opts.title,
		Format:       opts.format,
		Instructions: opts.instructions,
	}
}

func printPreview(result *trellokeep.BuildResult) {
	fmt.Println(boldStyle.Sprint(result.Title))
	fmt.Println()
	switch body := result.Body.(type) {
	case *trellokeep.TextBody:
		fmt.Println(body.Text)
	case *trellokeep.ChecklistBody:
		for _, entry := range body.Entries {
			if entry.IsHeader {
				fmt.Println(headerStyle.Sprint(entry.Text))
			} else {
				fmt.Printf("%s %s\n", mutedStyle.Sprint("[ ]"), entry.Text)
			}
		}
	}
}

func flagString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

func firstOf(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(errorStyle.Sprint(err))
		os.Exit(1)
	}
}
