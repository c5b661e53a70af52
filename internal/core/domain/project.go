package domain

import "time"

// Project groups the sources whose documents are indexed together.
type Project struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}
