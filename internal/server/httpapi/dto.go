package httpapi

import (
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
)

// Requests carry snake_case fields matching the public API. Each request
// type validates its own shape; validation failures wrap
// common.ErrorValidation so the dispatch layer maps them to 400.

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must not be blank", common.ErrorValidation, field)
	}
	return nil
}

func maxLen(field, value string, limit int) error {
	if len(value) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", common.ErrorValidation, field, limit)
	}
	return nil
}

func maxLenPtr(field string, value *string, limit int) error {
	if value == nil {
		return nil
	}
	return maxLen(field, *value, limit)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"username", r.Username},
		{"password", r.Password},
		{"name", r.Name},
	}
	for _, f := range fields {
		if err := required(f.name, f.value); err != nil {
			return err
		}
		if err := maxLen(f.name, f.value, 100); err != nil {
			return err
		}
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if err := required("username", r.Username); err != nil {
		return err
	}
	return required("password", r.Password)
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if r.Name == nil && r.Password == nil {
		return fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}
	if r.Name != nil {
		if err := required("name", *r.Name); err != nil {
			return err
		}
	}
	if r.Password != nil {
		if err := required("password", *r.Password); err != nil {
			return err
		}
	}
	if err := maxLenPtr("name", r.Name, 100); err != nil {
		return err
	}
	return maxLenPtr("password", r.Password, 100)
}

type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{Username: user.Username, Name: user.Name}
}

type ContactRequest struct {
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func (r *ContactRequest) Validate() error {
	if err := required("first_name", r.FirstName); err != nil {
		return err
	}
	if err := maxLen("first_name", r.FirstName, 100); err != nil {
		return err
	}
	if err := maxLenPtr("last_name", r.LastName, 100); err != nil {
		return err
	}
	if err := maxLenPtr("email", r.Email, 100); err != nil {
		return err
	}
	return maxLenPtr("phone", r.Phone, 20)
}

func (r *ContactRequest) fields() services.ContactFields {
	return services.ContactFields{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type ContactResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

func toContactResponse(c *models.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

type AddressRequest struct {
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	Country    *string `json:"country,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

func (r *AddressRequest) Validate() error {
	if err := maxLenPtr("street", r.Street, 255); err != nil {
		return err
	}
	if err := maxLenPtr("city", r.City, 100); err != nil {
		return err
	}
	if err := maxLenPtr("province", r.Province, 100); err != nil {
		return err
	}
	if err := maxLenPtr("country", r.Country, 100); err != nil {
		return err
	}
	return maxLenPtr("postal_code", r.PostalCode, 10)
}

func (r *AddressRequest) fields() services.AddressFields {
	return services.AddressFields{
		Street:     r.Street,
		City:       r.City,
		Province:   r.Province,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
}

type AddressResponse struct {
	ID         int64   `json:"id"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	Province   *string `json:"province,omitempty"`
	Country    *string `json:"country,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
}

func toAddressResponse(a *models.Address) *AddressResponse {
	return &AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}
