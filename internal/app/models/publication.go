package models

import "time"

// PublicationType is the closed set of publication kinds.
type PublicationType string

const (
	PublicationJournal     PublicationType = "journal"
	PublicationConference  PublicationType = "conference"
	PublicationBook        PublicationType = "book"
	PublicationBookChapter PublicationType = "bookChapter"
	PublicationOther       PublicationType = "other"
)

// PublicationStatus tracks a publication through the review pipeline.
type PublicationStatus string

const (
	StatusPublished   PublicationStatus = "published"
	StatusAccepted    PublicationStatus = "accepted"
	StatusInPress     PublicationStatus = "inPress"
	StatusUnderReview PublicationStatus = "underReview"
)

// Publication represents one entry on the publications page.
type Publication struct {
	ID       int64             `json:"id" db:"id"`
	Title    string            `json:"title" db:"title"`
	Abstract string            `json:"abstract" db:"abstract"`
	Authors  []Author          `json:"authors"` // Ordered; loaded from publication_authors
	Type     PublicationType   `json:"type" db:"publication_type" example:"journal"`
	Year     int               `json:"year" db:"year" example:"2024"`
	Journal  *string           `json:"journal,omitempty" db:"journal"`
	Volume   *string           `json:"volume,omitempty" db:"volume"`
	Issue    *string           `json:"issue,omitempty" db:"issue"`
	Pages    *string           `json:"pages,omitempty" db:"pages"`
	DOI      *string           `json:"doi,omitempty" db:"doi"`
	URL      *string           `json:"url,omitempty" db:"url"`
	PdfURL   *string           `json:"pdfUrl,omitempty" db:"pdf_url"` // Media host reference (nullable)
	Status   PublicationStatus `json:"status" db:"status" example:"published"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Author is one entry in a publication's ordered author list.
type Author struct {
	ID            int64   `json:"id" db:"id"`
	PublicationID int64   `json:"-" db:"publication_id"`
	Position      int     `json:"-" db:"position"` // Preserves insertion order
	Name          string  `json:"name" db:"name"`
	Institution   *string `json:"institution,omitempty" db:"institution"`
	IsMainAuthor  bool    `json:"isMainAuthor" db:"is_main_author"`
}
