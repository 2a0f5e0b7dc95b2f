package domain

import "time"

type ID string

type User struct {
	ID        ID
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}
