package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRegisterThenDuplicate(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "A", "a@x.com", "secret1")

	code, resp := env.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if resp.Status != "fail" {
		t.Fatalf("expected fail envelope, got %q", resp.Status)
	}
	msgs := decodeMsgs(t, resp.Data)
	if !containsMsg(msgs, "User already exists") {
		t.Fatalf("expected \"User already exists\", got %v", msgs)
	}
}

func TestRegisterValidationIsExhaustive(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "", "email": "nope", "password": "123",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	var violations []struct {
		Msg   string `json:"msg"`
		Param string `json:"param"`
	}
	if err := json.Unmarshal(resp.Data, &violations); err != nil {
		t.Fatalf("decoding violations: %v", err)
	}
	if len(violations) != 3 {
		t.Fatalf("expected all 3 violations reported, got %v", violations)
	}
}

func TestLoginWrongPasswordMatchesUnknownEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "A", "a@x.com", "secret1")

	codeWrong, respWrong := env.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	codeUnknown, respUnknown := env.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "ghost@x.com", "password": "secret1",
	})

	if codeWrong != http.StatusBadRequest || codeUnknown != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", codeWrong, codeUnknown)
	}

	msgsWrong := decodeMsgs(t, respWrong.Data)
	msgsUnknown := decodeMsgs(t, respUnknown.Data)
	if !containsMsg(msgsWrong, "Invalid Credentials") || !containsMsg(msgsUnknown, "Invalid Credentials") {
		t.Fatalf("expected identical generic errors, got %v and %v", msgsWrong, msgsUnknown)
	}
}

func TestLoginThenCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "A", "a@x.com", "secret1")

	code, resp := env.do(t, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", code)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decoding token: %v", err)
	}

	code, resp = env.do(t, http.MethodGet, "/api/auth", data.Token, nil)
	if code != http.StatusOK {
		t.Fatalf("current user: expected 200, got %d", code)
	}

	var user map[string]any
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		t.Fatalf("decoding user: %v", err)
	}
	if user["email"] != "a@x.com" {
		t.Fatalf("unexpected user payload: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password leaked in response")
	}
}

func TestCurrentUserRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodGet, "/api/auth", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if resp.Status != "fail" {
		t.Fatalf("expected fail envelope, got %q", resp.Status)
	}
}
