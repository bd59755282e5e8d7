package dto

// AuthorRequest is one entry of the ordered author list. IsMainAuthor
// defaults to false when omitted.
type AuthorRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=255"`
	Institution  *string `json:"institution,omitempty" validate:"omitempty,max=255"`
	IsMainAuthor bool    `json:"isMainAuthor"`
}

// CreatePublicationRequest is the insertable shape of a publication. It is
// carried as JSON in the multipart field "data"; an optional PDF file
// arrives in the part named "pdf".
type CreatePublicationRequest struct {
	Title    string          `json:"title" validate:"required,min=2,max=512"`
	Abstract string          `json:"abstract" validate:"max=8192"`
	Authors  []AuthorRequest `json:"authors" validate:"required,min=1,dive"`
	Type     string          `json:"type" validate:"required,oneof=journal conference book bookChapter other"`
	Year     int             `json:"year" validate:"required,gte=1900,lte=2100"`
	Journal  *string         `json:"journal,omitempty" validate:"omitempty,max=255"`
	Volume   *string         `json:"volume,omitempty" validate:"omitempty,max=32"`
	Issue    *string         `json:"issue,omitempty" validate:"omitempty,max=32"`
	Pages    *string         `json:"pages,omitempty" validate:"omitempty,max=32"`
	DOI      *string         `json:"doi,omitempty" validate:"omitempty,max=255"`
	URL      *string         `json:"url,omitempty" validate:"omitempty,url,max=1024"`
	Status   string          `json:"status" validate:"required,oneof=published accepted inPress underReview"`
}

// UpdatePublicationRequest replaces the mutable fields; the author list is
// replaced wholesale in the given order.
type UpdatePublicationRequest struct {
	Title    string          `json:"title" validate:"required,min=2,max=512"`
	Abstract string          `json:"abstract" validate:"max=8192"`
	Authors  []AuthorRequest `json:"authors" validate:"required,min=1,dive"`
	Type     string          `json:"type" validate:"required,oneof=journal conference book bookChapter other"`
	Year     int             `json:"year" validate:"required,gte=1900,lte=2100"`
	Journal  *string         `json:"journal,omitempty" validate:"omitempty,max=255"`
	Volume   *string         `json:"volume,omitempty" validate:"omitempty,max=32"`
	Issue    *string         `json:"issue,omitempty" validate:"omitempty,max=32"`
	Pages    *string         `json:"pages,omitempty" validate:"omitempty,max=32"`
	DOI      *string         `json:"doi,omitempty" validate:"omitempty,max=255"`
	URL      *string         `json:"url,omitempty" validate:"omitempty,url,max=1024"`
	Status   string          `json:"status" validate:"required,oneof=published accepted inPress underReview"`
}
