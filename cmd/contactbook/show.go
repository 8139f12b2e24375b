package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <person-id>",
	Short: "Show one contact in full",
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

		printPerson(p)
		for _, a := range p.Addresses {
			street := strings.TrimSpace(a.Street + " " + a.HouseNumber)
			fmt.Printf("  %s: %s, %s %s\n", a.Label, street, a.ZipCode, a.Town)
		}
		for _, f := range p.PhoneFields {
			fmt.Printf("  %s: %s\n", f.Label, f.Number)
		}
		for _, f := range p.CustomFields {
			fmt.Printf("  %s: %s\n", f.Label, f.Value)
		}
		if len(p.Groups) > 0 {
			titles := make([]string, len(p.Groups))
			for i, g := range p.Groups {
				titles[i] = g.Title
			}
			fmt.Printf("  Groups: %s\n", strings.Join(titles, ", "))
		}
		return nil
	},
}
