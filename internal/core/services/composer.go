package services

import (
	"strings"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

// Section labels match the markdown the marketplace has always produced, so
// re-indexed records embed identically to historical ones.
const (
	labelDescription = "**Descrição:**"
	labelExcerpt     = "**Resumo:**"
	labelTRL         = "**TRL:**"
)

// ComposeDocument renders a technology input into the normalized markdown
// document that gets chunked and embedded. Present fields appear in fixed
// order (title, description, excerpt, TRL), each under its label and
// separated by blank lines; empty fields are skipped without leaving an
// empty heading. Deterministic: the same input always produces byte-identical
// output.
func ComposeDocument(in domain.TechnologyInput) string {
	var b strings.Builder

	if strings.TrimSpace(in.Title) != "" {
		b.WriteString("# " + in.Title + "\n\n")
	}
	if strings.TrimSpace(in.Description) != "" {
		b.WriteString(labelDescription + "  \n" + in.Description + "\n\n")
	}
	if strings.TrimSpace(in.Excerpt) != "" {
		b.WriteString(labelExcerpt + "  \n" + in.Excerpt + "\n\n")
	}
	if strings.TrimSpace(in.TRL) != "" {
		b.WriteString(labelTRL + "  \n" + in.TRL + "\n\n")
	}

	return strings.TrimSpace(b.String())
}
