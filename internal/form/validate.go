package form

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdg-garage/diet-forms/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Validate returns the keys of the fields that keep the form from being saved.
// An empty result means the form is save-eligible.
func Validate(f Form) []string {
	var invalid []string

	if _, err := time.Parse(dateLayout, f.Date); err != nil {
		invalid = append(invalid, "date")
	}
	if !f.DietType.Valid() {
		invalid = append(invalid, "dietType")
	}
	if strings.TrimSpace(f.VehicleNumber) == "" {
		invalid = append(invalid, "vehicleNumber")
	}
	if strings.TrimSpace(f.Person1) == "" {
		invalid = append(invalid, "person1")
	}

	if len(f.Services) == 0 {
		return append(invalid, "services")
	}
	if !validServiceNumber(f.Services[0].ServiceNumber) {
		invalid = append(invalid, "services[0].serviceNumber")
	}
	for i, s := range f.Services {
		for _, field := range []struct{ name, value string }{
			{"originTime", s.OriginTime},
			{"destinationTime", s.DestinationTime},
			{"endTime", s.EndTime},
		} {
			if field.value == "" {
				continue
			}
			if _, err := time.Parse(timeLayout, field.value); err != nil {
				invalid = append(invalid, fmt.Sprintf("services[%d].%s", i, field.name))
			}
		}
	}
	return invalid
}

// validServiceNumber requires the characters that make up the diet id to be
// digits.
func validServiceNumber(number string) bool {
	id := models.DeriveID([]models.ServiceEntry{{ServiceNumber: number}})
	if len([]rune(id)) < models.IDLength {
		return false
	}
	for _, r := range id {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
