package domain

import "time"

// Company owns stations. Station views resolve the company name through this
// aggregate rather than any hardcoded id mapping.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"created_on"`
}
