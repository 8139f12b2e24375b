package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/henrijaeger/contact-book/pkg/types"
)

var (
	updateLastName  string
	updateFirstName string
	updateBirthdate string
	updateJoin      []int64
	updateLeave     []int64
	updateAddPhone  []string
	updateAddr      []string
	updateAddCustom []string

	updateTitle string
)

func init() {
	updatePersonCmd.Flags().StringVar(&updateLastName, "last", "", "new last name")
	updatePersonCmd.Flags().StringVar(&updateFirstName, "first", "", "new first name")
	updatePersonCmd.Flags().StringVar(&updateBirthdate, "birthdate", "", "new birthdate (YYYY-MM-DD)")
	updatePersonCmd.Flags().Int64SliceVar(&updateJoin, "join", nil, "group id to join")
	updatePersonCmd.Flags().Int64SliceVar(&updateLeave, "leave", nil, "group id to leave")
	updatePersonCmd.Flags().StringArrayVar(&updateAddPhone, "add-phone", nil, "phone field as label:number")
	updatePersonCmd.Flags().StringArrayVar(&updateAddr, "add-address", nil, "address as label:street:house:zip:town")
	updatePersonCmd.Flags().StringArrayVar(&updateAddCustom, "add-custom", nil, "custom field as vtype:label:value")

	updateGroupCmd.Flags().StringVar(&updateTitle, "title", "", "new title")

	updateCmd.AddCommand(updatePersonCmd)
	updateCmd.AddCommand(updateGroupCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a contact or a group",
}

var updatePersonCmd = &cobra.Command{
	Use:   "person <id>",
	Short: "Update a contact",
	Long: `Update a contact's names and birthdate, move it between groups,
and attach new addresses, phone fields, and custom fields.`,
	Args: cobra.ExactArgs(1),
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

		if updateLastName != "" {
			p.LastName = updateLastName
		}
		if updateFirstName != "" {
			p.FirstName = updateFirstName
		}
		if updateBirthdate != "" {
			birthdate, err := parseBirthdate(updateBirthdate)
			if err != nil {
				return err
			}
			p.Birthdate = birthdate
		}

		for _, gid := range updateJoin {
			g, err := book.ContactGroupByID(gid)
			if err != nil {
				return err
			}
			if err := p.Add(g); err != nil {
				return err
			}
		}
		for _, gid := range updateLeave {
			g, err := book.ContactGroupByID(gid)
			if err != nil {
				return err
			}
			if err := p.Remove(g); err != nil {
				return err
			}
		}

		for _, arg := range updateAddPhone {
			parts := strings.SplitN(arg, ":", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid phone %q, want label:number", arg)
			}
			f, err := types.NewPhoneField(p, parts[0], parts[1])
			if err != nil {
				return err
			}
			if err := p.Add(f); err != nil {
				return err
			}
		}
		for _, arg := range updateAddr {
			parts := strings.SplitN(arg, ":", 5)
			if len(parts) != 5 {
				return fmt.Errorf("invalid address %q, want label:street:house:zip:town", arg)
			}
			a, err := types.NewAddress(p, parts[0], parts[1], parts[2], parts[3], parts[4])
			if err != nil {
				return err
			}
			if err := p.Add(a); err != nil {
				return err
			}
		}
		for _, arg := range updateAddCustom {
			parts := strings.SplitN(arg, ":", 3)
			if len(parts) != 3 {
				return fmt.Errorf("invalid custom field %q, want vtype:label:value", arg)
			}
			f, err := types.NewCustomField(p, parts[1], parts[2], parts[0])
			if err != nil {
				return err
			}
			if err := p.Add(f); err != nil {
				return err
			}
		}

		if _, err := book.Save(p); err != nil {
			return err
		}
		fmt.Printf("updated person %s\n", p.ID)
		return nil
	},
}

var updateGroupCmd = &cobra.Command{
	Use:   "group <id>",
	Short: "Rename a contact group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if updateTitle == "" {
			return fmt.Errorf("--title is required")
		}

		book, err := openBook()
		if err != nil {
			return err
		}

		g, err := book.ContactGroupByID(id)
		if err != nil {
			return err
		}
		g.Title = updateTitle

		if _, err := book.Save(g); err != nil {
			return err
		}
		fmt.Printf("updated group %s\n", g.ID)
		return nil
	},
}
