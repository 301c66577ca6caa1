package models

import (
	"encoding/json"
	"testing"
)

func TestCitationFields(t *testing.T) {
	var c Citation
	c.SetField("author", "Knuth")
	c.SetField("doi", "10.1000/182")

	if c.Author != "Knuth" {
		t.Errorf("Expected author column to be set, got %q", c.Author)
	}
	if got := c.Field("doi"); got != "10.1000/182" {
		t.Errorf("Expected doi in extras, got %q", got)
	}

	c.SetField("doi", "")
	if len(c.Extra.JSON) != 0 {
		t.Errorf("Expected extras to be cleared, got %s", c.Extra.JSON)
	}
}

func TestCitationJSON(t *testing.T) {
	c := Citation{Name: "Paper_1", PaperID: 1, Type: "misc"}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Failed to marshal citation: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Failed to unmarshal citation: %v", err)
	}
	if _, ok := out["extra"].(map[string]interface{}); !ok {
		t.Errorf("Expected extra to be an object, got %v", out["extra"])
	}
	if _, ok := out["journal"]; ok {
		t.Error("Expected empty journal to be omitted")
	}
}

func TestCitationColumns(t *testing.T) {
	cols := CitationColumns()
	if len(cols) != 26 {
		t.Errorf("Expected 26 columns, got %d", len(cols))
	}
	if !IsCitationColumn("citation_key") || IsCitationColumn("url") {
		t.Error("Unexpected column classification")
	}
}
