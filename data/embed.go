package data

import _ "embed"

// EntryTypes is the BibTeX entry type catalogue used to validate citations.
//
//go:embed bibtex/entry_types.yaml
var EntryTypes []byte
