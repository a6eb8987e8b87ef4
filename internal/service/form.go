package service

import (
	"strings"

	"menu-app/internal/model"
)

// ParseForm validates raw client input and normalizes it into the form the
// menu store accepts: trimmed text, a known course and a two-decimal price.
func ParseForm(form model.MenuItemForm) (*model.NewMenuItem, error) {
	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)
	price := strings.TrimSpace(form.Price)

	if name == "" || description == "" || price == "" {
		return nil, model.ErrMissingField
	}

	course, err := model.ParseCourse(strings.TrimSpace(form.Course))
	if err != nil {
		return nil, err
	}

	amount, err := ParsePrice(price)
	if err != nil {
		return nil, err
	}

	return &model.NewMenuItem{
		Name:        name,
		Description: description,
		Course:      course,
		Price:       FormatPrice(amount),
	}, nil
}
