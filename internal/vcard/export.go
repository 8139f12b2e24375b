package vcard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/henrijaeger/contact-book/pkg/types"
)

// Export writes every member of the group into one .vcf file in dir. The
// filename carries the current date, so repeated exports on the same day
// overwrite each other. It returns the path of the written file.
func Export(dir string, group *types.ContactGroup) (string, error) {
	name := "contacts" + time.Now().Format("20060102") + ".vcf"
	path := filepath.Join(dir, name)

	var b strings.Builder
	for _, p := range group.Persons {
		b.WriteString(Serialize(p))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
