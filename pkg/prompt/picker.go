package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formsubmissions/pkg/model"
)

const pickerPageSize = 15

// FormLabel is the option label shown for a form.
func FormLabel(form model.FormSummary) string {
	return fmt.Sprintf("%s (#%s)", form.Name, form.ID)
}

// PickForm asks the user to choose one of forms.
func PickForm(ctx context.Context, driver Driver, forms []model.FormSummary) (model.FormSummary, error) {
	if driver == nil {
		return model.FormSummary{}, errors.New("prompt: driver is required")
	}
	if len(forms) == 0 {
		return model.FormSummary{}, ErrNoForms
	}

	options := make([]string, len(forms))
	for i, form := range forms {
		options[i] = FormLabel(form)
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:  "Select a form",
		Options:  options,
		Help:     "Submissions of the selected form will be fetched",
		PageSize: pickerPageSize,
	})
	if err != nil {
		return model.FormSummary{}, err
	}
	if idx < 0 || idx >= len(forms) {
		return model.FormSummary{}, fmt.Errorf("%w: %d", ErrInvalidSelection, idx)
	}
	return forms[idx], nil
}

// AskPassword prompts for a non-empty password without echoing it.
func AskPassword(ctx context.Context, driver Driver, username string) (string, error) {
	if driver == nil {
		return "", errors.New("prompt: driver is required")
	}
	return driver.Password(ctx, InputConfig{
		Message: fmt.Sprintf("Password for %s", username),
		Validator: func(value string) error {
			if value == "" {
				return errors.New("password is required")
			}
			return nil
		},
	})
}
