package domain

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

type PersonalReference struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicantID  int       `gorm:"not null;index" json:"applicant_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	EmailAddress string    `gorm:"type:varchar(255)" json:"email_address"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PersonalReferenceAttributes is one submitted reference group. ID is nil for a
// reference that was never saved; Destroy is the transient _destroy flag.
type PersonalReferenceAttributes struct {
	ID           *int   `json:"id,omitempty"`
	Name         string `json:"name" valid:"required~Personal references name can't be blank"`
	EmailAddress string `json:"email_address"`
	Destroy      bool   `json:"_destroy"`
}

func (a PersonalReferenceAttributes) IsNew() bool {
	return a.ID == nil
}

// AllBlank reports whether the user typed nothing into the group.
func (a PersonalReferenceAttributes) AllBlank() bool {
	return isBlank(a.Name) && isBlank(a.EmailAddress)
}

// UnmarshalJSON accepts _destroy as a bool, a number or a string like "1", the way
// nested form clients send it.
func (a *PersonalReferenceAttributes) UnmarshalJSON(data []byte) error {
	type attributes PersonalReferenceAttributes
	var aux struct {
		attributes
		Destroy interface{} `json:"_destroy"`
	}
	if err := sonic.Unmarshal(data, &aux); err != nil {
		return err
	}
	*a = PersonalReferenceAttributes(aux.attributes)

	switch v := aux.Destroy.(type) {
	case nil:
		a.Destroy = false
	case bool:
		a.Destroy = v
	case string:
		a.Destroy = ParseFlag(v)
	case float64:
		a.Destroy = v != 0
	case int64:
		a.Destroy = v != 0
	default:
		return fmt.Errorf("invalid _destroy value %v", v)
	}
	return nil
}
