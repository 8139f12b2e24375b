package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List contact groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := openBook()
		if err != nil {
			return err
		}

		groups, err := book.AllContactGroups()
		if err != nil {
			return err
		}

		for _, g := range groups {
			fmt.Printf("%s\t%s\t%d member(s)\n", g.ID, g.Title, len(g.Persons))
		}
		return nil
	},
}
