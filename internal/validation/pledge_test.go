package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookmylastwishes/portal/internal/model"
)

func TestValidateContactNumber(t *testing.T) {
	assert.NoError(t, ValidateContactNumber("9876543210"))
	assert.NoError(t, ValidateContactNumber("919876543210"))

	assert.Error(t, ValidateContactNumber(""))
	assert.Error(t, ValidateContactNumber("12345"))
	assert.Error(t, ValidateContactNumber("+919876543210"), "separators are not accepted")
	assert.Error(t, ValidateContactNumber("98765 43210"))
	assert.Error(t, ValidateContactNumber("1234567890123456"))
}

func TestValidateServiceGrade(t *testing.T) {
	for _, grade := range []string{"1", "2", "3", "4", "5", "6"} {
		assert.NoError(t, ValidateServiceGrade(grade))
	}

	assert.Error(t, ValidateServiceGrade(""))
	assert.Error(t, ValidateServiceGrade("0"))
	assert.Error(t, ValidateServiceGrade("7"))
	assert.Error(t, ValidateServiceGrade("premium"))
}

func TestValidatePledge(t *testing.T) {
	valid := func() *model.PledgePayload {
		return &model.PledgePayload{
			FullName:      "Asha Verma",
			Email:         "asha@example.com",
			DOB:           "1962-03-14",
			ContactNumber: "9876543210",
			ServiceGrade:  "3",
		}
	}

	assert.NoError(t, ValidatePledge(valid()))

	p := valid()
	p.FullName = "   "
	assert.Error(t, ValidatePledge(p))

	p = valid()
	p.Email = "not-an-email"
	assert.Error(t, ValidatePledge(p))

	p = valid()
	p.RelativesContact = "call my son"
	assert.Error(t, ValidatePledge(p))

	// The relative's contact is optional
	p = valid()
	p.RelativesContact = ""
	assert.NoError(t, ValidatePledge(p))

	// Sex, religion and occupation are accepted as-is
	p = valid()
	p.Sex = ""
	p.Religion = ""
	p.Occupation = ""
	assert.NoError(t, ValidatePledge(p))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct horse battery"))

	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("my-password-123"), "common patterns are rejected")
	assert.Error(t, ValidatePassword(string(make([]byte, 80))), "bcrypt truncates past 72 bytes")
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("asha@example.com"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("no-at-sign"))
}
