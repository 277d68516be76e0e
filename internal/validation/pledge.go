package validation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/bookmylastwishes/portal/internal/model"
)

var contactNumberRe = regexp.MustCompile(`^\d{10,15}$`)

// ValidateContactNumber accepts 10 to 15 digits, no separators
func ValidateContactNumber(contact string) error {
	if contact == "" {
		return errors.New("contact number is required")
	}
	if !contactNumberRe.MatchString(contact) {
		return errors.New("contact number must be 10 to 15 digits")
	}
	return nil
}

// ValidateServiceGrade accepts grades 1 through 6
func ValidateServiceGrade(grade string) error {
	if grade == "" {
		return errors.New("service grade is required")
	}
	n, err := strconv.Atoi(grade)
	if err != nil || n < 1 || n > 6 {
		return errors.New("service grade must be between 1 and 6")
	}
	return nil
}

// ValidatePledge checks the fields of a pledge form submission.
// The optional fields (sex, religion, occupation, memorable deeds)
// are accepted as-is.
func ValidatePledge(p *model.PledgePayload) error {
	if strings.TrimSpace(p.FullName) == "" {
		return errors.New("full name is required")
	}
	if strings.TrimSpace(p.DOB) == "" {
		return errors.New("date of birth is required")
	}
	if err := ValidateEmail(p.Email); err != nil {
		return err
	}
	if err := ValidateContactNumber(p.ContactNumber); err != nil {
		return err
	}
	if p.RelativesContact != "" {
		if !contactNumberRe.MatchString(p.RelativesContact) {
			return errors.New("relative's contact number must be 10 to 15 digits")
		}
	}
	if err := ValidateServiceGrade(p.ServiceGrade); err != nil {
		return err
	}
	return nil
}
