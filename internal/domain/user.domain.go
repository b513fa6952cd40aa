package domain

import "time"

// User is the registered account entity.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Occupation   string    `json:"occupation"`
	Company      string    `json:"company"`
	Skills       string    `json:"skills"`
	Country      string    `json:"country"`
	City         string    `json:"city"`
	LinkedinURL  string    `json:"linkedin_url"`
	CreatedAt    time.Time `json:"-"`
}
