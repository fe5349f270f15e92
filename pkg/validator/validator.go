package validator

import (
	"net/mail"
	"strings"
)

// FieldError is a single violated rule. Responses carry the full list, not
// just the first failure.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

type FieldErrors []FieldError

func (v FieldErrors) HasErrors() bool {
	return len(v) > 0
}

func (v *FieldErrors) Add(param, msg string) {
	*v = append(*v, FieldError{Msg: msg, Param: param})
}

func ValidateRegister(name, email, password string) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Name is required")
	}

	validateEmail(email, &errs)

	if len(password) < 6 {
		errs.Add("password", "Please enter a password with 6 or more characters")
	}

	return errs
}

func ValidateLogin(email, password string) FieldErrors {
	var errs FieldErrors

	validateEmail(email, &errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateProfile(status, skills string) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(status) == "" {
		errs.Add("status", "Status is required")
	}
	if strings.TrimSpace(skills) == "" {
		errs.Add("skills", "Skills is required")
	}

	return errs
}

func ValidateExperience(title, company, from string) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(company) == "" {
		errs.Add("company", "Company is required")
	}
	if strings.TrimSpace(from) == "" {
		errs.Add("from", "From date is required")
	}

	return errs
}

func ValidateEducation(school, degree, fieldOfStudy, from string) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(school) == "" {
		errs.Add("school", "School is required")
	}
	if strings.TrimSpace(degree) == "" {
		errs.Add("degree", "Degree is required")
	}
	if strings.TrimSpace(fieldOfStudy) == "" {
		errs.Add("fieldofstudy", "Field of study is required")
	}
	if strings.TrimSpace(from) == "" {
		errs.Add("from", "From date is required")
	}

	return errs
}

func ValidatePost(text string) FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(text) == "" {
		errs.Add("text", "Text is required")
	}

	return errs
}

func validateEmail(email string, errs *FieldErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Please include a valid email")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Please include a valid email")
	}
}
