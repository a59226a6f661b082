package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/godamri/helix-problem/problem"
)

type owner struct {
	Email string `json:"email" validate:"required,email"`
}

type createItem struct {
	Name     string   `json:"name" validate:"required"`
	Quantity int      `json:"quantity" validate:"gte=1"`
	Tags     []string `json:"tags" validate:"max=2"`
	Kind     string   `json:"kind,omitempty" validate:"omitempty,oneof=book dvd"`
	Owner    owner    `json:"owner"`
	Internal string   `json:"-" validate:"required"`
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct(createItem{Name: "n", Quantity: 1, Owner: owner{Email: "a@b.co"}, Internal: "x"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStructViolations(t *testing.T) {
	v := New()
	err := v.Struct(createItem{
		Quantity: 0,
		Tags:     []string{"a", "b", "c"},
		Kind:     "vinyl",
		Owner:    owner{Email: "nope"},
		Internal: "x",
	})

	var vp *problem.ViolationError
	if !errors.As(err, &vp) {
		t.Fatalf("expected violation error, got %T %v", err, err)
	}
	if vp.Status().Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", vp.Status().Code)
	}

	got := map[string]problem.Violation{}
	for _, viol := range vp.Violations() {
		got[viol.Field] = viol
	}

	want := map[string]string{
		"name":        "must not be blank",
		"quantity":    "must be greater than or equal to 1",
		"tags":        "size must be at most 2",
		"kind":        "must be one of [book dvd]",
		"owner.email": "must be a valid email address",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d violations, got %+v", len(want), vp.Violations())
	}
	for field, msg := range want {
		if got[field].Message != msg {
			t.Fatalf("%s: expected %q, got %q", field, msg, got[field].Message)
		}
	}
	if got["owner.email"].InvalidValue != "nope" {
		t.Fatalf("expected invalid value to be kept, got %v", got["owner.email"].InvalidValue)
	}
}

func TestStructRejectsNonStruct(t *testing.T) {
	err := New().Struct(42)
	if err == nil {
		t.Fatalf("expected error")
	}
	var vp *problem.ViolationError
	if errors.As(err, &vp) {
		t.Fatalf("expected a plain error for an invalid target")
	}
}
