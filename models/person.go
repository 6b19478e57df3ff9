package models

import (
	"fmt"
	"regexp"
	"time"
)

// Gender values accepted for a person record.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Marital status values accepted for a person record.
const (
	MaritalStatusSingle  = "single"
	MaritalStatusMarried = "married"
)

var nameRe = regexp.MustCompile(`^[A-Z]+$`)

// Person represents a registered community member in the 'people' table.
// FatherID, MotherID and SpouseID are weak references into the same table;
// the paired *Name fields are free-text fallbacks used only while the
// relative has no record of their own. An id field and its name field are
// mutually exclusive: whenever the id is set the name must be null.
type Person struct {
	ID            string  `json:"id" gorm:"primaryKey;size:8"`
	Name          string  `json:"name" gorm:"not null"`
	Surname       string  `json:"surname"`
	MaidenName    string  `json:"maidenName" gorm:"column:maiden_name"`
	Family        *string `json:"family,omitempty"`
	Gender        string  `json:"gender" gorm:"not null"`
	MaritalStatus string  `json:"maritalStatus" gorm:"column:marital_status"`

	FatherID   *string `json:"fatherId" gorm:"column:father_id;index"`
	MotherID   *string `json:"motherId" gorm:"column:mother_id;index"`
	SpouseID   *string `json:"spouseId" gorm:"column:spouse_id;index"`
	FatherName *string `json:"fatherName" gorm:"column:father_name"`
	MotherName *string `json:"motherName" gorm:"column:mother_name"`
	SpouseName *string `json:"spouseName" gorm:"column:spouse_name"`

	BirthMonth *string `json:"birthMonth,omitempty" gorm:"column:birth_month"`
	BirthYear  *string `json:"birthYear,omitempty" gorm:"column:birth_year"`

	ProfilePictureURL string  `json:"profilePictureUrl" gorm:"column:profile_picture_url"`
	Description       *string `json:"description,omitempty"`

	IsDeceased bool    `json:"isDeceased" gorm:"column:is_deceased"`
	DeathDate  *string `json:"deathDate,omitempty" gorm:"column:death_date"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}

// Validate checks the field-level constraints that do not require a lookup
// against other records. Reference-level constraints (gender of a linked
// father/mother, spouse symmetry) are enforced by the integrity service.
func (p *Person) Validate() error {
	if !nameRe.MatchString(p.Name) {
		return fmt.Errorf("name must consist of uppercase letters only, got %q", p.Name)
	}
	if p.Gender != GenderMale && p.Gender != GenderFemale {
		return fmt.Errorf("gender must be %q or %q, got %q", GenderMale, GenderFemale, p.Gender)
	}
	if p.MaritalStatus != "" && p.MaritalStatus != MaritalStatusSingle && p.MaritalStatus != MaritalStatusMarried {
		return fmt.Errorf("marital status must be %q or %q, got %q", MaritalStatusSingle, MaritalStatusMarried, p.MaritalStatus)
	}
	return nil
}
