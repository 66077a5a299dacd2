package validator

import (
	"log"

	"gigwork_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires domain-specific tags into the validator
// instance. Registration failure is a startup bug, not a runtime error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-account-type", validateAccountType)
	mustRegister("is-proposal-reason", validateProposalReason)
	mustRegister("is-notification-frequency", validateNotificationFrequency)
	mustRegister("is-offer-days", validateOfferDays)
	mustRegister("is-expected-offers", validateExpectedOffers)
}

func validateAccountType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // emptiness is for 'required' to decide
	}
	switch models.AccountType(value) {
	case models.AccountTypeClient, models.AccountTypeFreelancer, models.AccountTypeAdmin:
		return true
	}
	return false
}

func validateProposalReason(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ProposalReason(value) {
	case models.ProposalReasonColdOutreach, models.ProposalReasonReturningClient, models.ProposalReasonPartnership:
		return true
	}
	return false
}

func validateNotificationFrequency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.NotificationFrequency(value) {
	case models.FrequencyInstant, models.FrequencyDailyDigest:
		return true
	}
	return false
}

func validateOfferDays(fl validator.FieldLevel) bool {
	return models.OfferDaysChoices[int(fl.Field().Int())]
}

func validateExpectedOffers(fl validator.FieldLevel) bool {
	return models.ExpectedOffersChoices[int(fl.Field().Int())]
}
