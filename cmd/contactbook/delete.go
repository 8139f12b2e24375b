package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	deleteCmd.AddCommand(deletePersonCmd)
	deleteCmd.AddCommand(deleteGroupCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a contact or a group",
}

var deletePersonCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "Delete a contact and everything it owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		book, err := openBook()
		if err != nil {
			return err
		}

		p, err := book.PersonByID(id)
		if err != nil {
			return err
		}
		if err := book.Delete(p); err != nil {
			return err
		}
		fmt.Printf("deleted person %s\n", p.ID)
		return nil
	},
}

var deleteGroupCmd = &cobra.Command{
	Use:   "group <id>",
	Short: "Delete a group, keeping its members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		book, err := openBook()
		if err != nil {
			return err
		}

		g, err := book.ContactGroupByID(id)
		if err != nil {
			return err
		}
		if err := book.Delete(g); err != nil {
			return err
		}
		fmt.Printf("deleted group %s\n", g.ID)
		return nil
	},
}
