package models

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/datatypes"
)

// Citation is the BibTeX record of a paper. A paper has at most one.
type Citation struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Abstract     string `json:"abstract,omitempty" gorm:"type:text"`
	PaperID      uint   `json:"paper_id" gorm:"not null;uniqueIndex"`
	Type         string `json:"type" gorm:"size:32;not null"`
	Address      string `json:"address,omitempty" gorm:"size:255"`
	Annote       string `json:"annote,omitempty" gorm:"size:255"`
	Author       string `json:"author,omitempty" gorm:"size:255"`
	Booktitle    string `json:"booktitle,omitempty" gorm:"size:255"`
	Chapter      string `json:"chapter,omitempty" gorm:"size:255"`
	Crossref     string `json:"crossref,omitempty" gorm:"size:255"`
	Edition      string `json:"edition,omitempty" gorm:"size:255"`
	Editor       string `json:"editor,omitempty" gorm:"size:255"`
	Howpublished string `json:"howpublished,omitempty" gorm:"size:255"`
	Institution  string `json:"institution,omitempty" gorm:"size:255"`
	Journal      string `json:"journal,omitempty" gorm:"size:255"`
	CitationKey  string `json:"citation_key,omitempty" gorm:"column:citation_key;size:255"`
	Month        string `json:"month,omitempty" gorm:"size:255"`
	Note         string `json:"note,omitempty" gorm:"size:255"`
	Number       string `json:"number,omitempty" gorm:"size:255"`
	Organization string `json:"organization,omitempty" gorm:"size:255"`
	Pages        string `json:"pages,omitempty" gorm:"size:255"`
	Publisher    string `json:"publisher,omitempty" gorm:"size:255"`
	School       string `json:"school,omitempty" gorm:"size:255"`
	Series       string `json:"series,omitempty" gorm:"size:255"`
	Title        string `json:"title,omitempty" gorm:"size:255"`
	Volume       string `json:"volume,omitempty" gorm:"size:255"`
	Year         string `json:"year,omitempty" gorm:"size:255"`
	Extra        JSON   `json:"extra"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name for Citation
func (Citation) TableName() string {
	return "citations"
}

// citationColumns maps form field names to the string columns of a citation.
var citationColumns = map[string]func(*Citation) *string{
	"name":         func(c *Citation) *string { return &c.Name },
	"abstract":     func(c *Citation) *string { return &c.Abstract },
	"type":         func(c *Citation) *string { return &c.Type },
	"address":      func(c *Citation) *string { return &c.Address },
	"annote":       func(c *Citation) *string { return &c.Annote },
	"author":       func(c *Citation) *string { return &c.Author },
	"booktitle":    func(c *Citation) *string { return &c.Booktitle },
	"chapter":      func(c *Citation) *string { return &c.Chapter },
	"crossref":     func(c *Citation) *string { return &c.Crossref },
	"edition":      func(c *Citation) *string { return &c.Edition },
	"editor":       func(c *Citation) *string { return &c.Editor },
	"howpublished": func(c *Citation) *string { return &c.Howpublished },
	"institution":  func(c *Citation) *string { return &c.Institution },
	"journal":      func(c *Citation) *string { return &c.Journal },
	"citation_key": func(c *Citation) *string { return &c.CitationKey },
	"month":        func(c *Citation) *string { return &c.Month },
	"note":         func(c *Citation) *string { return &c.Note },
	"number":       func(c *Citation) *string { return &c.Number },
	"organization": func(c *Citation) *string { return &c.Organization },
	"pages":        func(c *Citation) *string { return &c.Pages },
	"publisher":    func(c *Citation) *string { return &c.Publisher },
	"school":       func(c *Citation) *string { return &c.School },
	"series":       func(c *Citation) *string { return &c.Series },
	"title":        func(c *Citation) *string { return &c.Title },
	"volume":       func(c *Citation) *string { return &c.Volume },
	"year":         func(c *Citation) *string { return &c.Year },
}

// IsCitationColumn reports whether field is stored in its own column.
func IsCitationColumn(field string) bool {
	_, ok := citationColumns[field]
	return ok
}

// CitationColumns returns the column-backed field names in sorted order.
func CitationColumns() []string {
	names := make([]string, 0, len(citationColumns))
	for name := range citationColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the value of a named field, looking in Extra for non-column fields.
func (c *Citation) Field(name string) string {
	if get, ok := citationColumns[name]; ok {
		return *get(c)
	}
	return c.Extras()[name]
}

// SetField assigns a named field, storing non-column fields in Extra.
func (c *Citation) SetField(name, value string) {
	if get, ok := citationColumns[name]; ok {
		*get(c) = value
		return
	}
	extras := c.Extras()
	if value == "" {
		delete(extras, name)
	} else {
		extras[name] = value
	}
	c.setExtras(extras)
}

// Extras decodes the extra fields. A malformed column reads as empty.
func (c *Citation) Extras() map[string]string {
	extras := map[string]string{}
	if len(c.Extra.JSON) > 0 {
		_ = json.Unmarshal(c.Extra.JSON, &extras)
	}
	return extras
}

func (c *Citation) setExtras(extras map[string]string) {
	if len(extras) == 0 {
		c.Extra = JSON{}
		return
	}
	data, _ := json.Marshal(extras)
	c.Extra = JSON{JSON: datatypes.JSON(data)}
}
