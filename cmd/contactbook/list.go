package main

import (
	"github.com/spf13/cobra"

	"github.com/henrijaeger/contact-book/pkg/types"
)

var (
	listGroupID int64
	listRecent  bool
)

func init() {
	listCmd.Flags().Int64Var(&listGroupID, "group", 0, "only list members of the group with this id")
	listCmd.Flags().BoolVar(&listRecent, "recent", false, "only list contacts modified in the last 14 days")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts",
	Long: `List all contacts sorted by name, the members of one group, or the
contacts modified within the last 14 days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := openBook()
		if err != nil {
			return err
		}

		var group *types.ContactGroup
		switch {
		case listGroupID != 0:
			group, err = book.ContactGroupByID(listGroupID)
		case listRecent:
			group, err = book.RecentContactsGroup()
		default:
			group, err = book.AllContactsGroup()
		}
		if err != nil {
			return err
		}

		for _, p := range group.Persons {
			printPerson(p)
		}
		return nil
	},
}
