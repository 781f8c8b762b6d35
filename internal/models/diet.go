package models

import (
	"strings"
	"time"
)

type DietType string

const (
	DietLunch  DietType = "lunch"
	DietDinner DietType = "dinner"
)

func (t DietType) Valid() bool {
	return t == DietLunch || t == DietDinner
}

// IDLength is the number of service-number characters that make up a diet id.
const IDLength = 9

type Diet struct {
	ID                 string         `gorm:"primaryKey" json:"id"`
	Date               string         `json:"date"`
	DietType           DietType       `json:"dietType"`
	VehicleNumber      string         `json:"vehicleNumber"`
	Person1            string         `json:"person1"`
	Person2            string         `json:"person2"`
	Company            string         `json:"company,omitempty"`
	SignatureConductor string         `json:"signatureConductor"`
	SignatureAjudant   string         `json:"signatureAjudant"`
	Services           []ServiceEntry `gorm:"foreignKey:DietID;references:ID" json:"services"`
	SavedAt            time.Time      `gorm:"index" json:"savedAt"`
}

type ServiceEntry struct {
	RowID           uint   `gorm:"primaryKey;column:row_id" json:"-"`
	DietID          string `gorm:"index" json:"-"`
	Position        int    `json:"-"`
	ServiceNumber   string `json:"serviceNumber"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	OriginTime      string `json:"originTime"`
	DestinationTime string `json:"destinationTime"`
	EndTime         string `json:"endTime"`
}

// DeriveID returns the first IDLength characters of the trimmed service number
// of the first entry, or "" when there is none.
func DeriveID(services []ServiceEntry) string {
	if len(services) == 0 {
		return ""
	}
	number := []rune(strings.TrimSpace(services[0].ServiceNumber))
	if len(number) > IDLength {
		number = number[:IDLength]
	}
	return string(number)
}

// SameData reports whether two diets hold the same data. SavedAt and storage
// bookkeeping are ignored.
func (d Diet) SameData(other Diet) bool {
	if d.ID != other.ID ||
		d.Date != other.Date ||
		d.DietType != other.DietType ||
		d.VehicleNumber != other.VehicleNumber ||
		d.Person1 != other.Person1 ||
		d.Person2 != other.Person2 ||
		d.Company != other.Company ||
		d.SignatureConductor != other.SignatureConductor ||
		d.SignatureAjudant != other.SignatureAjudant {
		return false
	}
	if len(d.Services) != len(other.Services) {
		return false
	}
	for i := range d.Services {
		if !d.Services[i].SameData(other.Services[i]) {
			return false
		}
	}
	return true
}

func (s ServiceEntry) SameData(other ServiceEntry) bool {
	return s.ServiceNumber == other.ServiceNumber &&
		s.Origin == other.Origin &&
		s.Destination == other.Destination &&
		s.OriginTime == other.OriginTime &&
		s.DestinationTime == other.DestinationTime &&
		s.EndTime == other.EndTime
}

// Positioned returns a copy of the services numbered in slice order and
// attached to dietID, ready to be written as child rows.
func Positioned(dietID string, services []ServiceEntry) []ServiceEntry {
	out := make([]ServiceEntry, len(services))
	for i, s := range services {
		s.RowID = 0
		s.DietID = dietID
		s.Position = i
		out[i] = s
	}
	return out
}
