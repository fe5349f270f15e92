package validator

import "testing"

func hasViolation(errs FieldErrors, param string) bool {
	for _, e := range errs {
		if e.Param == param {
			return true
		}
	}
	return false
}

func TestValidateRegisterAllFieldsReported(t *testing.T) {
	errs := ValidateRegister("", "not-an-email", "abc")

	if len(errs) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(errs), errs)
	}
	for _, param := range []string{"name", "email", "password"} {
		if !hasViolation(errs, param) {
			t.Errorf("missing violation for %q", param)
		}
	}
}

func TestValidateRegisterOK(t *testing.T) {
	errs := ValidateRegister("A", "a@x.com", "secret1")
	if errs.HasErrors() {
		t.Fatalf("unexpected violations: %v", errs)
	}
}

func TestValidateRegisterShortPassword(t *testing.T) {
	errs := ValidateRegister("A", "a@x.com", "12345")
	if !hasViolation(errs, "password") {
		t.Fatalf("expected password violation, got %v", errs)
	}
}

func TestValidateLogin(t *testing.T) {
	errs := ValidateLogin("", "")
	if !hasViolation(errs, "email") || !hasViolation(errs, "password") {
		t.Fatalf("expected email and password violations, got %v", errs)
	}

	if errs := ValidateLogin("a@x.com", "whatever"); errs.HasErrors() {
		t.Fatalf("unexpected violations: %v", errs)
	}
}

func TestValidateProfile(t *testing.T) {
	errs := ValidateProfile("", " ")
	if !hasViolation(errs, "status") || !hasViolation(errs, "skills") {
		t.Fatalf("expected status and skills violations, got %v", errs)
	}
}

func TestValidateExperienceMissingFrom(t *testing.T) {
	errs := ValidateExperience("Developer", "Acme", "")
	if len(errs) != 1 || errs[0].Param != "from" {
		t.Fatalf("expected a single from violation, got %v", errs)
	}
	if errs[0].Msg != "From date is required" {
		t.Fatalf("unexpected message %q", errs[0].Msg)
	}
}

func TestValidateEducation(t *testing.T) {
	errs := ValidateEducation("", "", "", "")
	if len(errs) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(errs), errs)
	}
}

func TestValidatePost(t *testing.T) {
	if errs := ValidatePost("  "); !hasViolation(errs, "text") {
		t.Fatalf("expected text violation, got %v", errs)
	}
	if errs := ValidatePost("hello"); errs.HasErrors() {
		t.Fatalf("unexpected violations: %v", errs)
	}
}
