package domain

import "time"

type User struct {
	Id        UserId    `json:"id"`
	Name      UserName  `json:"name"`
	Email     Email     `json:"-"`
	Admin     bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Credentials struct {
	Name     UserName `validate:"required,max=50"`
	Email    Email    `validate:"required,email"`
	Password Password `validate:"required,min=8,max=72"` // bcrypt ignores bytes past 72
}
