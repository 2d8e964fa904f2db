// internal/models/customer_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNameJoinsAvailableParts(t *testing.T) {
	c := Customer{
		Username: "ahmed.h",
		PersonalInfo: &PersonalInfo{
			FirstName:  "Ahmed",
			LastName:   "Hassan",
			FamilyName: "Al-Sayed",
		},
	}

	assert.Equal(t, "Ahmed Hassan Al-Sayed", c.DisplayName())
}

func TestDisplayNameCollapsesWhitespace(t *testing.T) {
	c := Customer{
		Username: "ahmed.h",
		PersonalInfo: &PersonalInfo{
			FirstName: "  Ahmed ",
			LastName:  " Hassan  ",
		},
	}

	assert.Equal(t, "Ahmed Hassan", c.DisplayName())
}

func TestDisplayNameFallsBackToUsername(t *testing.T) {
	noInfo := Customer{Username: "ahmed.h"}
	assert.Equal(t, "ahmed.h", noInfo.DisplayName())

	blankInfo := Customer{Username: "ahmed.h", PersonalInfo: &PersonalInfo{}}
	assert.Equal(t, "ahmed.h", blankInfo.DisplayName())
}

func TestCompletionPercentage(t *testing.T) {
	c := Customer{CurrentStep: 7}
	assert.InDelta(t, 100.0, c.CompletionPercentage(), 0.0001)

	c.CurrentStep = 1
	assert.InDelta(t, 100.0/7.0, c.CompletionPercentage(), 0.0001)
}
