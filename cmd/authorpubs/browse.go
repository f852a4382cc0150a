package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [author-route]",
	Short: "Open the author publications browser",
	Long: `browse opens the terminal browser on an author profile. The route may be
"/authors/<id>", "authors/<id>" or a bare id; it defaults to ui.start_author.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	target := e.cfg.UI.StartAuthor
	if len(args) > 0 {
		target = args[0]
	}
	r, err := route.Parse(target)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st := e.newStore()
	defer st.Close()

	app := tui.New(ctx, st, actions.Creators{Backend: e.svc}, e.svc, r)
	defer app.Close()

	e.log.Info("browse", zap.Stringer("route", r))
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
