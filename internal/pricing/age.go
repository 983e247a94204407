package pricing

import (
	"fmt"
	"time"
)

// Age eligibility windows per passenger type. Child bounds are inclusive.
const (
	AdultMinAge  = 18
	ChildMinAge  = 2
	ChildMaxAge  = 12
	InfantMaxAge = 2 // exclusive: infants are strictly under 2
)

// AgeAt computes age in whole years at the reference date, accounting for a
// birthday that has not yet occurred this year.
func AgeAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

// ValidateAge checks that a date of birth falls inside the eligibility
// window for the passenger type.
func ValidateAge(t PassengerType, dob, at time.Time) error {
	age := AgeAt(dob, at)
	// A DOB after the reference date computes negative and would otherwise
	// slip past the infant upper bound
	if age < 0 {
		return fmt.Errorf("date of birth is after the departure date")
	}
	switch t {
	case PassengerAdult:
		if age < AdultMinAge {
			return fmt.Errorf("adult passenger must be at least %d years old, got age %d", AdultMinAge, age)
		}
	case PassengerChild:
		if age < ChildMinAge || age > ChildMaxAge {
			return fmt.Errorf("child passenger must be between %d and %d years old, got age %d", ChildMinAge, ChildMaxAge, age)
		}
	case PassengerInfant:
		if age >= InfantMaxAge {
			return fmt.Errorf("infant passenger must be under %d years old, got age %d", InfantMaxAge, age)
		}
	default:
		return fmt.Errorf("unknown passenger type %q", t)
	}
	return nil
}
