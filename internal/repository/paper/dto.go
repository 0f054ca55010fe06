package paper

import (
	domp "github.com/paperfind/paperfind/internal/domain/paper"
)

// dto mirrors the stored JSON shape of a paper record.
type dto struct {
	ID            string   `json:"id"`
	Category      string   `json:"category"`
	Title         string   `json:"title"`
	Abstract      string   `json:"abstract"`
	Keywords      []string `json:"keywords,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	PubType       string   `json:"publicationType,omitempty"`
	Scope         string   `json:"scope,omitempty"`
	ResearchField string   `json:"researchField,omitempty"`
	Status        string   `json:"status,omitempty"`
	UploadType    string   `json:"uploadType,omitempty"`
	AuthorUIDs    []string `json:"authorUIDs,omitempty"`
	AuthorNames   []string `json:"authorNames,omitempty"`
	PublishedAt   string   `json:"publicationDate,omitempty"`
}

// toDomain converts a stored record, defaulting the id and category from
// the key when the document omits them.
func (d dto) toDomain(id, category string) domp.Paper {
	if d.ID != "" {
		id = d.ID
	}
	if d.Category != "" {
		category = d.Category
	}
	return domp.Reconstruct(
		id, category, d.Title, d.Abstract,
		d.Keywords, d.Tags,
		d.PubType, d.Scope, d.ResearchField, d.Status, d.UploadType,
		d.AuthorUIDs, d.AuthorNames,
		d.PublishedAt,
	)
}
