package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("session_role", validateSessionRole)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("stage_name", validateStageName)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateSessionRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{"operator", "manager", "qa"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func validateStageName(fl validator.FieldLevel) bool {
	stage := fl.Field().String()
	validStages := []string{"Arrival", "Inspection", "Dispatch"}

	for _, validStage := range validStages {
		if stage == validStage {
			return true
		}
	}
	return false
}
