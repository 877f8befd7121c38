package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/neomorfeo/servio/internal/domain"
)

func TestNameLengthError_Message(t *testing.T) {
	err := &domain.NameLengthError{Name: "test"}

	if !strings.Contains(err.Error(), `"test"`) {
		t.Errorf("error message should contain the name: %q", err.Error())
	}
}

func TestNameLengthError_As(t *testing.T) {
	var err error = &domain.NameLengthError{Name: "x"}

	var nameErr *domain.NameLengthError
	if !errors.As(err, &nameErr) {
		t.Error("errors.As should match NameLengthError")
	}
}
