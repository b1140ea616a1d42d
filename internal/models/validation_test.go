package models

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x+tag@sub.domain.org"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false", e)
		}
	}

	invalid := []string{"", "plain", "a b@c.co", "@no-user.com", "no-at.com", "a@nodot"}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true", e)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("short1") {
		t.Error("short password accepted")
	}
	if ValidPassword("has a space") {
		t.Error("password with space accepted")
	}
	if !ValidPassword("password123") {
		t.Error("reasonable password rejected")
	}
}

func TestValidName(t *testing.T) {
	if !ValidName("Alice Smith") {
		t.Error("plain name rejected")
	}
	if ValidName(`Robert"); DROP TABLE users;--`) {
		t.Error("name with special characters accepted")
	}
}
