// Package form holds the snapshot of an on-screen diet form and the change
// detection built on it.
//
// The UI pushes a Form on every relevant input. Serialize turns it into a
// canonical string so two snapshots with the same field values compare equal
// byte for byte. A Tracker remembers the baseline string of the last saved or
// loaded form and reports whether the current snapshot has diverged from it.
package form

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gdg-garage/diet-forms/internal/models"
)

// Form is the plain data snapshot of the form. Field declaration order fixes
// the key order of the serialized form.
type Form struct {
	Date               string                `json:"date"`
	DietType           models.DietType       `json:"dietType"`
	VehicleNumber      string                `json:"vehicleNumber"`
	Person1            string                `json:"person1"`
	Person2            string                `json:"person2"`
	Company            string                `json:"company" required:"false"`
	SignatureConductor string                `json:"signatureConductor"`
	SignatureAjudant   string                `json:"signatureAjudant"`
	Services           []models.ServiceEntry `json:"services"`
}

// FromRecord writes every field of a stored diet, signatures included, into a
// fresh form.
func FromRecord(d models.Diet) Form {
	f := Form{
		Date:               d.Date,
		DietType:           d.DietType,
		VehicleNumber:      d.VehicleNumber,
		Person1:            d.Person1,
		Person2:            d.Person2,
		Company:            d.Company,
		SignatureConductor: d.SignatureConductor,
		SignatureAjudant:   d.SignatureAjudant,
	}
	f.Services = stripped(d.Services)
	return f
}

// Record builds the candidate diet for a save. The id is derived from the
// first service entry.
func (f Form) Record(savedAt time.Time) models.Diet {
	return models.Diet{
		ID:                 models.DeriveID(f.Services),
		Date:               f.Date,
		DietType:           f.DietType,
		VehicleNumber:      f.VehicleNumber,
		Person1:            f.Person1,
		Person2:            f.Person2,
		Company:            f.Company,
		SignatureConductor: f.SignatureConductor,
		SignatureAjudant:   f.SignatureAjudant,
		Services:           stripped(f.Services),
		SavedAt:            savedAt,
	}
}

// Canonical returns a copy with storage bookkeeping removed and a nil
// service list replaced by an empty one.
func (f Form) Canonical() Form {
	f.Services = stripped(f.Services)
	return f
}

// Serialize encodes the canonical form as compact JSON.
func Serialize(f Form) string {
	// Form holds strings only, Marshal cannot fail on it.
	data, _ := json.Marshal(f.Canonical())
	return string(data)
}

// indented renders a serialized form one field per line for diffing.
func indented(serialized string) string {
	var b bytes.Buffer
	if err := json.Indent(&b, []byte(serialized), "", "  "); err != nil {
		return serialized + "\n"
	}
	b.WriteString("\n")
	return b.String()
}

func stripped(services []models.ServiceEntry) []models.ServiceEntry {
	out := make([]models.ServiceEntry, 0, len(services))
	for _, s := range services {
		out = append(out, models.ServiceEntry{
			ServiceNumber:   s.ServiceNumber,
			Origin:          s.Origin,
			Destination:     s.Destination,
			OriginTime:      s.OriginTime,
			DestinationTime: s.DestinationTime,
			EndTime:         s.EndTime,
		})
	}
	return out
}
