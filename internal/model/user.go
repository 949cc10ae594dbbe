package model

// User is an authenticated account. Email is the credential subject and
// must be unique; the application-level validator enforces it read-then-decide,
// the unique index is the backstop against concurrent registration.
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"firstName" gorm:"size:255;not null"`
	LastName  string `json:"lastName" gorm:"size:255;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string `json:"-" gorm:"size:255;not null"` // Never expose in JSON

	// Relations
	Roles []Role `json:"roles" gorm:"many2many:user_roles"`
}
