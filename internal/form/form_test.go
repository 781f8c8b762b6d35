package form

import (
	"strings"
	"testing"
	"time"

	"github.com/gdg-garage/diet-forms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm() Form {
	return Form{
		Date:          "2024-05-01",
		DietType:      models.DietLunch,
		VehicleNumber: "AB-12-CD",
		Person1:       "Ana",
		Person2:       "Rui",
		Services: []models.ServiceEntry{
			{ServiceNumber: "123456789A", Origin: "Braga", Destination: "Porto", OriginTime: "08:00", DestinationTime: "09:30", EndTime: "10:00"},
		},
	}
}

func TestSerialize_Idempotent(t *testing.T) {
	f := filledForm()
	assert.Equal(t, Serialize(f), Serialize(f))
}

func TestSerialize_KeyOrder(t *testing.T) {
	got := Serialize(Form{})
	assert.Equal(t,
		`{"date":"","dietType":"","vehicleNumber":"","person1":"","person2":"","company":"","signatureConductor":"","signatureAjudant":"","services":[]}`,
		got)
}

func TestSerialize_IgnoresBookkeeping(t *testing.T) {
	a := filledForm()
	b := filledForm()
	b.Services = models.Positioned("123456789", b.Services)
	b.Services[0].RowID = 7

	assert.Equal(t, Serialize(a), Serialize(b))
}

func TestRecordRoundTrip(t *testing.T) {
	f := filledForm()
	f.SignatureConductor = "data:image/png;base64,AAAA"
	savedAt := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

	rec := f.Record(savedAt)
	assert.Equal(t, "123456789", rec.ID)
	assert.Equal(t, savedAt, rec.SavedAt)
	assert.Equal(t, "data:image/png;base64,AAAA", rec.SignatureConductor)

	assert.Equal(t, Serialize(f), Serialize(FromRecord(rec)))
}

func TestRecord_EmptyServices(t *testing.T) {
	rec := Form{Date: "2024-05-01"}.Record(time.Now())
	assert.Empty(t, rec.ID)
	assert.NotNil(t, rec.Services)
}

func TestTracker(t *testing.T) {
	empty := Form{}
	tr := NewTracker(empty)

	assert.False(t, tr.HasChanged(empty))
	assert.Equal(t, Serialize(empty), tr.Baseline())

	f := filledForm()
	assert.True(t, tr.HasChanged(f))

	tr.Reset(f)
	assert.False(t, tr.HasChanged(f))

	f.Services[0].Destination = "Lisboa"
	assert.True(t, tr.HasChanged(f))

	tr.SetBaseline(Serialize(f))
	assert.False(t, tr.HasChanged(f))
}

func TestTracker_Diff(t *testing.T) {
	f := filledForm()
	tr := NewTracker(f)
	assert.Empty(t, tr.Diff(f))

	changed := filledForm()
	changed.Services[0].Destination = "Lisboa"

	diff := tr.Diff(changed)
	require.NotEmpty(t, diff)
	assert.True(t, strings.HasPrefix(diff, "--- baseline\n+++ current\n"), diff)
	assert.Contains(t, diff, `-      "destination": "Porto",`)
	assert.Contains(t, diff, `+      "destination": "Lisboa",`)
}

func TestDiff(t *testing.T) {
	stored := filledForm()
	candidate := filledForm()
	candidate.Person2 = "Joana"

	diff := Diff("stored", "new", stored, candidate)
	assert.Contains(t, diff, "--- stored")
	assert.Contains(t, diff, `+  "person2": "Joana",`)

	assert.Empty(t, Diff("stored", "new", stored, filledForm()))
}
