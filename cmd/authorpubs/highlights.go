package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/database/repository"
	"github.com/jask/authorpubs/internal/route"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/service"
	"github.com/jask/authorpubs/internal/views"
)

var highlightsCmd = &cobra.Command{
	Use:   "highlights <author-route>",
	Short: "Print an author's highlighted records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := route.Parse(args[0])
		if err != nil {
			return err
		}
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.newStore()
		defer st.Close()
		c := actions.Creators{Backend: e.svc}
		st.Dispatch(c.FetchAuthor(r.AuthorID))
		st.Wait()

		state := st.GetState()
		if state.Authors.Error != "" {
			return errors.New(state.Authors.Error)
		}
		hl := views.AuthorHighlightsContainer(state, st, c, search.AuthorHighlightsNS, plainRecord)
		if hl.Error != "" {
			return errors.New(hl.Error)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d highlighted\n", state.Authors.Data.FullName, len(hl.Results))
		for _, it := range hl.Items() {
			fmt.Fprintln(out, it.Body)
		}
		return nil
	},
}

func plainRecord(rec repository.Record) string {
	parts := []string{strconv.FormatInt(rec.ID, 10), rec.Title}
	if d := service.EarliestDate(rec); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, strconv.Itoa(rec.CitationCount)+" cit.")
	return strings.Join(parts, "\t")
}

var authorsCmd = &cobra.Command{
	Use:   "authors [name]",
	Short: "List authors, or the closest matches for name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		var authors []repository.Author
		if len(args) > 0 {
			authors, err = e.svc.SuggestAuthors(cmd.Context(), args[0], limit)
		} else {
			authors, err = e.svc.Authors.List(cmd.Context())
		}
		if err != nil {
			return err
		}
		for _, a := range authors {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", route.Route{AuthorID: a.ID}, a.FullName)
		}
		return nil
	},
}

func init() {
	authorsCmd.Flags().Int("limit", 5, "maximum number of matches")
	rootCmd.AddCommand(highlightsCmd, authorsCmd)
}
