package models

import "time"

// Resource is the shape shared by manuscripts and papers.
type Resource struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Abstract string `json:"abstract" gorm:"type:text"`
}

// Manuscript is a work in progress that cites papers
type Manuscript struct {
	Resource
}

// Paper is a published work a manuscript may reference
type Paper struct {
	Resource
}

// ManuscriptPaper associates a manuscript with a paper.
// The composite primary key keeps each pair unique.
type ManuscriptPaper struct {
	ManuscriptID uint `json:"manuscript_id" gorm:"primaryKey;autoIncrement:false"`
	PaperID      uint `json:"paper_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt    time.Time
}

// TableName overrides the table name for Manuscript
func (Manuscript) TableName() string {
	return "manuscripts"
}

// TableName overrides the table name for Paper
func (Paper) TableName() string {
	return "papers"
}

// TableName overrides the table name for ManuscriptPaper
func (ManuscriptPaper) TableName() string {
	return "manuscripts_papers"
}
