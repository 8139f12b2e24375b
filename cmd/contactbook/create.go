package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/henrijaeger/contact-book/pkg/types"
)

var (
	createLastName  string
	createFirstName string
	createBirthdate string
)

func init() {
	createPersonCmd.Flags().StringVar(&createLastName, "last", "", "last name")
	createPersonCmd.Flags().StringVar(&createFirstName, "first", "", "first name")
	createPersonCmd.Flags().StringVar(&createBirthdate, "birthdate", "", "birthdate (YYYY-MM-DD)")

	createCmd.AddCommand(createPersonCmd)
	createCmd.AddCommand(createGroupCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a contact or a group",
}

var createPersonCmd = &cobra.Command{
	Use:   "person",
	Short: "Create a contact",
	RunE: func(cmd *cobra.Command, args []string) error {
		birthdate, err := parseBirthdate(createBirthdate)
		if err != nil {
			return err
		}

		book, err := openBook()
		if err != nil {
			return err
		}

		p := types.NewPerson(createLastName, createFirstName, birthdate)
		id, err := book.Save(p)
		if err != nil {
			return err
		}
		fmt.Printf("created person %s\n", id)
		return nil
	},
}

var createGroupCmd = &cobra.Command{
	Use:   "group <title>",
	Short: "Create a contact group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := types.NewContactGroup(args[0])
		if err != nil {
			return err
		}

		book, err := openBook()
		if err != nil {
			return err
		}

		id, err := book.Save(g)
		if err != nil {
			return err
		}
		fmt.Printf("created group %s\n", id)
		return nil
	},
}
