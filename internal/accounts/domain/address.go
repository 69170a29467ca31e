package domain

import (
	"errors"
	"time"
)

var (
	ErrUserIDRequired  = errors.New("user id is required")
	ErrAddressRequired = errors.New("address line is required")
	ErrNameRequired    = errors.New("recipient name is required")
	ErrMobileRequired  = errors.New("mobile number is required")
	ErrPinCodeRequired = errors.New("pin code is required")
	ErrCityRequired    = errors.New("city is required")
)

// Address is a delivery destination owned by a single user.
type Address struct {
	ID             string
	UserID         string
	Name           string
	MobileNumber   string
	PinCode        string
	Address        string
	City           string
	LandMark       string
	State          string
	Country        string
	AltPhoneNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a Address) Validate() error {
	if a.UserID == "" {
		return ErrUserIDRequired
	}
	if a.Name == "" {
		return ErrNameRequired
	}
	if a.MobileNumber == "" {
		return ErrMobileRequired
	}
	if a.PinCode == "" {
		return ErrPinCodeRequired
	}
	if a.Address == "" {
		return ErrAddressRequired
	}
	if a.City == "" {
		return ErrCityRequired
	}
	return nil
}
