package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type signup struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"pwd"`
	Age      int    `json:"age" binding:"omitempty,min=18"`
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	Init()
	err := binding.Validator.ValidateStruct(&signup{Password: "short", Age: 3})
	d := ToDetails(err)
	if d["username"] != "is required" {
		t.Fatalf("username = %q", d["username"])
	}
	if d["password"] != "must be between 8 and 72 characters long" {
		t.Fatalf("password = %q", d["password"])
	}
	if d["age"] != "must be at least 18" {
		t.Fatalf("age = %q", d["age"])
	}
}

func TestToDetailsDecodeErrors(t *testing.T) {
	var v struct {
		N int `json:"n"`
	}
	if d := ToDetails(json.Unmarshal([]byte(`{"n":`), &v)); d["payload"] != "invalid json" {
		t.Fatalf("syntax: %v", d)
	}
	if d := ToDetails(json.Unmarshal([]byte(`{"n":"x"}`), &v)); d["n"] == "" {
		t.Fatalf("type: %v", d)
	}
	if d := ToDetails(&FieldError{Field: "due_date", Message: "bad"}); d["due_date"] != "bad" {
		t.Fatalf("field: %v", d)
	}
	if d := ToDetails(errors.New("x")); d["payload"] != "invalid payload" {
		t.Fatalf("fallback: %v", d)
	}
	if ToDetails(nil) != nil {
		t.Fatal("nil error")
	}
}
