package dto

// CreateTalkRequest is the insertable shape of a talk/event. It is carried
// as JSON in the multipart field "data"; an optional flyer image arrives in
// the part named "flyer". Status is computed server-side from the date.
type CreateTalkRequest struct {
	Title            string  `json:"title" validate:"required,min=2,max=255"`
	Description      string  `json:"description" validate:"max=4096"`
	Date             string  `json:"date" validate:"required,datetime=2006-01-02" example:"2025-03-14"`
	Time             string  `json:"time" validate:"omitempty,max=16" example:"14:30"`
	Venue            string  `json:"venue" validate:"required,min=2,max=255"`
	RegistrationLink *string `json:"registrationLink,omitempty" validate:"omitempty,url,max=1024"`
}

// UpdateTalkRequest replaces the mutable fields. Status may be set
// explicitly here (e.g. to cancel a talk); when empty it is recomputed from
// the date.
type UpdateTalkRequest struct {
	Title            string  `json:"title" validate:"required,min=2,max=255"`
	Description      string  `json:"description" validate:"max=4096"`
	Date             string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string  `json:"time" validate:"omitempty,max=16"`
	Venue            string  `json:"venue" validate:"required,min=2,max=255"`
	RegistrationLink *string `json:"registrationLink,omitempty" validate:"omitempty,url,max=1024"`
	Status           string  `json:"status" validate:"omitempty,oneof=upcoming completed cancelled"`
}
