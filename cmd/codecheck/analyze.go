package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dsablic/codecheck/internal/aiestimate"
	"github.com/dsablic/codecheck/internal/clipboard"
	"github.com/dsablic/codecheck/internal/config"
	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/output"
	"github.com/dsablic/codecheck/internal/report"
	"github.com/dsablic/codecheck/internal/source"
	"github.com/dsablic/codecheck/internal/ui"
	"github.com/spf13/cobra"
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("language", "", "Language hint (auto, python, javascript, cpp, java, php, html, css, matlab, ...)")
	cmd.Flags().Bool("extended", false, "Add line statistics, language breakdown and license detection")
	cmd.Flags().Bool("no-originality", false, "Skip the originality score")
	cmd.Flags().String("rev", "", "Read files as of a git revision instead of the working tree")
	cmd.Flags().String("repo", ".", "Repository used with --rev")
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file...]",
		Short: "Analyze code from files, stdin or an interactive form",
		Long: "Analyze one or more code snippets. With no files, code is read from stdin,\n" +
			"or from an interactive form when stdin is a terminal. Use - for stdin.",
		RunE: runAnalyze,
	}
	addInputFlags(cmd)
	cmd.Flags().String("format", "text", "Output format: text, json, msgpack")
	cmd.Flags().Bool("copy", false, "Copy the result (or share link with --share) to the clipboard")
	cmd.Flags().Bool("share", false, "Print a share link for the result")
	cmd.Flags().Int("concurrency", 0, "Number of files analyzed in parallel (default 10)")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Analyze code and save a printable report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReport,
	}
	addInputFlags(cmd)
	cmd.Flags().String("format", "", "Report format: pdf, md, json, msgpack (overrides report.format)")
	cmd.Flags().String("dir", "", "Directory to save the report in (overrides report.dir)")
	cmd.Flags().Bool("no-code", false, "Leave the analyzed code out of the report")
	return cmd
}

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share [file]",
		Short: "Analyze code and print a share link",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShare,
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("copy", false, "Copy the share link to the clipboard")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("unsupported format: %s (use text, json or msgpack)", format)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snippets, language, err := loadSnippets(cmd, args, cfg)
	if err != nil {
		return err
	}

	reqs := make([]aiestimate.Request, len(snippets))
	for i, s := range snippets {
		reqs[i] = buildRequest(cmd, cfg, s.Code, language)
	}

	if len(snippets) > 1 {
		return analyzeBatch(cmd, snippets, reqs, format)
	}

	result, err := estimate(cmd.Context(), cfg, reqs[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = output.WriteJSON(out, result)
	case "msgpack":
		err = output.WriteMsgpack(out, result)
	default:
		if ui.IsStdoutTTY() {
			_, err = fmt.Fprintln(out, ui.Render(*result, ui.TerminalWidth()))
		} else {
			err = output.WritePlainText(out, *result)
		}
	}
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	share, _ := cmd.Flags().GetBool("share")
	copyResult, _ := cmd.Flags().GetBool("copy")

	text := output.PlainText(*result)
	if share {
		link := output.ShareLink(*result, cfg.Share.Origin, time.Now())
		if link == "" {
			warn("share link unavailable")
		} else {
			fmt.Fprintln(out, link)
			text = link
		}
	}
	if copyResult {
		copyText(text)
	}
	return nil
}

func analyzeBatch(cmd *cobra.Command, snippets []source.Snippet, reqs []aiestimate.Request, format string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	progress := ui.NewPlainProgress(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
	est := aiestimate.New()
	results, partialErrors, err := est.EstimateAll(cmd.Context(), reqs, concurrency, func(completed, index int) {
		progress.Update(completed, len(reqs), snippets[index].Name)
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	progress.Done(len(reqs))
	for _, msg := range partialErrors {
		warn("%s", msg)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return output.WriteJSON(out, namedResults(snippets, results))
	case "msgpack":
		return output.WriteMsgpack(out, namedResults(snippets, results))
	}

	for i, r := range results {
		if r == nil {
			continue
		}
		fmt.Fprintf(out, "==> %s <==\n", snippets[i].Name)
		if err := output.WritePlainText(out, *r); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		fmt.Fprintln(out)
	}
	return nil
}

type namedResult struct {
	Name   string               `json:"name" msgpack:"name"`
	Result *model.ScoringResult `json:"result" msgpack:"result"`
}

func namedResults(snippets []source.Snippet, results []*model.ScoringResult) []namedResult {
	named := make([]namedResult, 0, len(results))
	for i, r := range results {
		if r == nil {
			continue
		}
		named = append(named, namedResult{Name: snippets[i].Name, Result: r})
	}
	return named
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Report.Format = v
	}
	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		cfg.Report.Dir = v
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	snippets, language, err := loadSnippets(cmd, args, cfg)
	if err != nil {
		return err
	}
	result, err := estimate(cmd.Context(), cfg, buildRequest(cmd, cfg, snippets[0].Code, language))
	if err != nil {
		return err
	}

	code := snippets[0].Code
	if noCode, _ := cmd.Flags().GetBool("no-code"); noCode {
		code = ""
	}
	generatedAt, err := time.Parse(time.RFC3339, result.CreatedAt)
	if err != nil {
		generatedAt = time.Now()
	}

	path, err := report.Save(cfg.Report.Dir, output.BuildDocument(*result, code, generatedAt), format)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Report saved to %s\n", path)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	snippets, language, err := loadSnippets(cmd, args, cfg)
	if err != nil {
		return err
	}
	result, err := estimate(cmd.Context(), cfg, buildRequest(cmd, cfg, snippets[0].Code, language))
	if err != nil {
		return err
	}

	link := output.ShareLink(*result, cfg.Share.Origin, time.Now())
	if link == "" {
		return fmt.Errorf("share link unavailable for origin %q", cfg.Share.Origin)
	}
	fmt.Fprintln(cmd.OutOrStdout(), link)

	if copyLink, _ := cmd.Flags().GetBool("copy"); copyLink {
		copyText(link)
	}
	return nil
}

// loadSnippets resolves the command's input and returns the language hint,
// which the interactive form may have changed.
func loadSnippets(cmd *cobra.Command, args []string, cfg config.Config) ([]source.Snippet, string, error) {
	language, _ := cmd.Flags().GetString("language")
	if language == "" {
		language = cfg.Analysis.Language
	}
	rev, _ := cmd.Flags().GetString("rev")

	if rev != "" {
		if len(args) == 0 {
			return nil, "", fmt.Errorf("--rev needs at least one file path")
		}
		repo, _ := cmd.Flags().GetString("repo")
		snippets := make([]source.Snippet, 0, len(args))
		for _, path := range args {
			s, err := source.ReadRevision(repo, rev, path)
			if err != nil {
				return nil, "", err
			}
			snippets = append(snippets, s)
		}
		return snippets, language, nil
	}

	if len(args) == 0 {
		if !ui.IsStdinTTY() {
			s, err := source.Read(source.Stdin, os.Stdin)
			if err != nil {
				return nil, "", err
			}
			return []source.Snippet{s}, language, nil
		}
		in, err := ui.Prompt(language)
		if err != nil {
			return nil, "", fmt.Errorf("input form: %w", err)
		}
		return []source.Snippet{{Name: "input", Code: in.Code}}, in.Language, nil
	}

	snippets := make([]source.Snippet, 0, len(args))
	for _, path := range args {
		s, err := source.Read(path, os.Stdin)
		if err != nil {
			return nil, "", err
		}
		snippets = append(snippets, s)
	}
	return snippets, language, nil
}

func buildRequest(cmd *cobra.Command, cfg config.Config, code, language string) aiestimate.Request {
	extended := cfg.Analysis.Extended
	if cmd.Flags().Changed("extended") {
		extended, _ = cmd.Flags().GetBool("extended")
	}
	noOriginality, _ := cmd.Flags().GetBool("no-originality")
	return aiestimate.Request{
		Code:            code,
		Language:        language,
		Extended:        extended,
		SkipOriginality: noOriginality || !cfg.Analysis.Originality,
	}
}

// estimate runs a single analysis. On a terminal the configured delay is
// waited behind a spinner; elsewhere the result is returned immediately.
func estimate(ctx context.Context, cfg config.Config, req aiestimate.Request) (*model.ScoringResult, error) {
	est := aiestimate.New()
	if !ui.IsTTY() || cfg.Analysis.Delay.Duration <= 0 {
		return est.Estimate(ctx, req)
	}
	if err := aiestimate.Validate(req.Code); err != nil {
		return nil, err
	}
	est.Delay = cfg.Analysis.Delay.Duration

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result *model.ScoringResult
	var estErr error
	done := make(chan struct{})

	p := ui.RunTUI("Analyzing code...")
	go func() {
		defer close(done)
		result, estErr = est.Estimate(ctx, req)
		p.Send(ui.DoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress display: %w", err)
	}
	if ui.Cancelled(final) {
		cancel()
		<-done
		return nil, context.Canceled
	}
	<-done
	return result, estErr
}

func copyText(text string) {
	if clipboard.New(ui.IsTTY()).Copy(text) {
		fmt.Fprintln(os.Stderr, "Copied to clipboard.")
		return
	}
	warn("could not copy to clipboard")
}
