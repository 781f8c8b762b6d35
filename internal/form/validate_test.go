package form

import (
	"testing"

	"github.com/gdg-garage/diet-forms/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		want   []string
	}{
		{"Valid", func(f *Form) {}, nil},
		{"BadDate", func(f *Form) { f.Date = "01/05/2024" }, []string{"date"}},
		{"UnknownDietType", func(f *Form) { f.DietType = "breakfast" }, []string{"dietType"}},
		{"MissingPeople", func(f *Form) { f.Person1 = " "; f.VehicleNumber = "" }, []string{"vehicleNumber", "person1"}},
		{"NoServices", func(f *Form) { f.Services = nil }, []string{"services"}},
		{"ShortServiceNumber", func(f *Form) { f.Services[0].ServiceNumber = "1234" }, []string{"services[0].serviceNumber"}},
		{"LettersInID", func(f *Form) { f.Services[0].ServiceNumber = "12345678X" }, []string{"services[0].serviceNumber"}},
		{"BadTime", func(f *Form) { f.Services[0].EndTime = "25:99" }, []string{"services[0].endTime"}},
		{"BlankTimeAllowed", func(f *Form) { f.Services[0].EndTime = "" }, nil},
		{"SecondServiceNumberFree", func(f *Form) {
			f.Services = append(f.Services, models.ServiceEntry{ServiceNumber: "x", OriginTime: "noon"})
		}, []string{"services[1].originTime"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filledForm()
			tt.mutate(&f)
			assert.Equal(t, tt.want, Validate(f))
		})
	}
}
