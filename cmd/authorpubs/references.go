package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/jask/authorpubs/internal/actions"
	"github.com/jask/authorpubs/internal/search"
	"github.com/jask/authorpubs/internal/views"
)

var referencesCmd = &cobra.Command{
	Use:   "references <record-id>",
	Short: "Print the references a record cites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid record id %q", args[0])
		}
		text, _ := cmd.Flags().GetString("q")
		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			page = 1
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.newStore()
		defer st.Close()
		c := actions.Creators{Backend: e.svc}
		st.Dispatch(c.FetchLiteratureReferences(id, search.NewQuery(search.KeyText, text, search.KeyPage, strconv.Itoa(page))))
		st.Wait()

		props := views.ReferenceListContainer(st.GetState(), st, c, id)
		if props.Error != "" {
			return errors.New(props.Error)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ansi.Strip(props.Render()))
		return nil
	},
}

func init() {
	referencesCmd.Flags().String("q", "", "only references whose title contains this text")
	referencesCmd.Flags().Int("page", 1, "page of references to print")
	rootCmd.AddCommand(referencesCmd)
}
