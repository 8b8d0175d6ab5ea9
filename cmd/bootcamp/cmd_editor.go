package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/stark-bootcamp.net/internal/client/editor"
	"gitlab.com/stark-bootcamp.net/internal/client/judge"
	"gitlab.com/stark-bootcamp.net/internal/client/timer"
)

var (
	editorLang    string
	editorFile    string
	editorProblem int
)

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Stage 1: solve the coding problem",
}

var editorRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a solution against the first test case",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := openEditor(cmd.Context(), nil)
		if err != nil {
			return err
		}
		_, err = ctl.Run(cmd.Context())
		return err
	},
}

var editorSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Grade a solution against every test case and submit it",
	RunE: func(cmd *cobra.Command, args []string) error {
		clock := newStageTimer(1)
		clock.Start()
		defer clock.Stop()

		ctl, err := openEditor(cmd.Context(), clock)
		if err != nil {
			return err
		}
		if _, err := ctl.Submit(cmd.Context()); err != nil {
			return err
		}
		clock.Stop()
		return showLeaderboard(cmd.Context(), cmd.OutOrStdout(), 1)
	},
}

var editorShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive editor session with the stage timer running",
	Long: `Opens an interactive session on the problem. Type "help" for commands.
Arguments are split like a shell, so quote values with spaces:
  append "print(solve(1, 2))"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clock := newStageTimer(1)
		ctl, err := openEditor(cmd.Context(), clock)
		if err != nil {
			return err
		}
		clock.Start()
		defer clock.Stop()

		sh := &shell{
			ctl:   ctl,
			clock: clock,
			out:   cmd.OutOrStdout(),
			term:  console,
			afterSubmit: func(ctx context.Context) error {
				clock.Stop()
				return showLeaderboard(ctx, cmd.OutOrStdout(), 1)
			},
			leaderboard: func(ctx context.Context) error {
				return showLeaderboard(ctx, cmd.OutOrStdout(), 1)
			},
		}
		return sh.run(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	editorCmd.PersistentFlags().StringVarP(&editorLang, "lang", "l", "python", "language: "+fmt.Sprint(judge.Languages()))
	editorCmd.PersistentFlags().StringVarP(&editorFile, "file", "f", "", "source file to load into the editor")
	editorCmd.PersistentFlags().IntVarP(&editorProblem, "problem", "p", 0, "problem id (defaults to the configured one)")
	editorCmd.AddCommand(editorRunCmd, editorSubmitCmd, editorShellCmd)
}

// openEditor builds the controller, loads the problem and the source file.
func openEditor(ctx context.Context, clock *timer.Timer) (*editor.Controller, error) {
	jc := judge.New(judge.Options{
		BaseURL:       cfg.Judge.BaseURL,
		AuthToken:     cfg.Judge.AuthToken,
		Timeout:       cfg.Judge.Timeout,
		CPUTimeLimit:  cfg.Judge.CPUTimeLimit,
		MemoryLimitKB: cfg.Judge.MemoryLimitKB,
	})
	deps := editor.Deps{
		Judge:        jc,
		API:          api,
		Terminal:     console,
		Session:      store,
		FallbackTeam: cfg.Team.TestName,
		ContestID:    cfg.Contest.ID,
		ProblemID:    cfg.Contest.ProblemID,
		Logger:       logger,
	}
	if clock != nil {
		deps.Clock = clock
	}
	ctl, err := editor.New(deps, editorLang)
	if err != nil {
		return nil, err
	}

	if editorFile != "" {
		data, err := os.ReadFile(editorFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", editorFile, err)
		}
		ctl.SetCode(string(data))
	}

	id := editorProblem
	if id == 0 {
		id = cfg.Contest.ProblemID
	}
	if _, err := ctl.LoadProblem(ctx, id); err != nil {
		// Running without test cases still works, stdin is just empty.
		logger.Warn("Problem not loaded", "problem", id, "error", err)
	}
	return ctl, nil
}
