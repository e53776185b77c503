package service

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once

	usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)
	intentRe   = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,39}$`)
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// Usernames are lowercased before validation, so uppercase fails here
		validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
		validate.RegisterValidation("intent", func(fl validator.FieldLevel) bool {
			return intentRe.MatchString(fl.Field().String())
		})
	})
}
