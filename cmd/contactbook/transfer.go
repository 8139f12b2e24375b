// vCard import and export commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henrijaeger/contact-book/internal/vcard"
	"github.com/henrijaeger/contact-book/pkg/types"
)

var exportGroupID int64

func init() {
	exportCmd.Flags().Int64Var(&exportGroupID, "group", 0, "only export members of the group with this id")
}

var importCmd = &cobra.Command{
	Use:   "import <file.vcf>",
	Short: "Import contacts from a vCard file",
	Long: `Import one or more vCard records from a .vcf file. Each record
becomes a new contact; category entries join existing groups by title or
create them on first sight.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading import file: %w", err)
		}

		book, err := openBook()
		if err != nil {
			return err
		}

		persons, err := vcard.NewImporter(book, newLogger()).ImportAll(string(data))
		if err != nil {
			return err
		}
		fmt.Printf("imported %d contact(s)\n", len(persons))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export contacts to a vCard file",
	Long: `Export all contacts, or the members of one group, into a single
.vcf file named contacts<YYYYMMDD>.vcf inside the given directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := openBook()
		if err != nil {
			return err
		}

		var group *types.ContactGroup
		if exportGroupID != 0 {
			group, err = book.ContactGroupByID(exportGroupID)
		} else {
			group, err = book.AllContactsGroup()
		}
		if err != nil {
			return err
		}

		path, err := vcard.Export(args[0], group)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d contact(s) to %s\n", len(group.Persons), path)
		return nil
	},
}
