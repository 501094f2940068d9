package dto

import "emergency-response-service/internal/domain"

// AddContactRequest takes either a full phone number or a dial code plus
// local digits.
type AddContactRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	DialCode string `json:"dial_code,omitempty"`
}

type ListContactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

type RemoveContactResponse struct {
	Removed int `json:"removed"`
}
