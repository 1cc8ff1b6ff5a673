package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ToPersisted_roundTrip(t *testing.T) {
	canonical := Record{
		"id":           "abc-123",
		"batchName":    "Essay uploads",
		"fileCount":    3,
		"assignmentId": "def-456",
		"metadata": map[string]interface{}{
			"gradingCriteria": "clarity",
			"someFlag":        true,
		},
		"items": []interface{}{
			map[string]interface{}{"createdAt": "2024-01-01T00:00:00Z"},
			"a_scalar_string_stays_put",
		},
	}

	persisted, flagged := ToPersisted(canonical)
	assert.Empty(t, flagged)
	assert.Equal(t, "Essay uploads", persisted["batch_name"], "string values must never be converted")
	assert.Equal(t, 3, persisted["file_count"])
	assert.Contains(t, persisted, "assignment_id")

	nested, ok := persisted["metadata"].(Record)
	assert.True(t, ok)
	assert.Contains(t, nested, "grading_criteria")
	assert.Contains(t, nested, "some_flag")

	items, ok := persisted["items"].([]interface{})
	assert.True(t, ok)
	assert.Equal(t, "a_scalar_string_stays_put", items[1])

	back, flagged := ToCanonical(persisted)
	assert.Empty(t, flagged)
	assert.Equal(t, canonical["batchName"], back["batchName"])
	assert.Equal(t, canonical["fileCount"], back["fileCount"])
	assert.Equal(t, canonical["assignmentId"], back["assignmentId"])

	backNested, ok := back["metadata"].(Record)
	assert.True(t, ok)
	assert.Equal(t, "clarity", backNested["gradingCriteria"])
	assert.Equal(t, true, backNested["someFlag"])
}

func Test_ToCanonical_roundTrip(t *testing.T) {
	persisted := Record{
		"id":            "abc-123",
		"batch_name":    "Essay uploads",
		"file_count":    3,
		"assignment_id": "def-456",
		"created_at":    "2024-01-01T00:00:00Z",
	}

	canonical, flagged := ToCanonical(persisted)
	assert.Empty(t, flagged)

	back, flagged := ToPersisted(canonical)
	assert.Empty(t, flagged)
	assert.Equal(t, persisted, back)
}

func Test_convert_unknownKeys(t *testing.T) {
	// keys unknown to any schema still convert under the same casing rule
	persisted := Record{"totally_unknown_field": 42}

	canonical, flagged := ToCanonical(persisted)
	assert.Empty(t, flagged)
	assert.Equal(t, 42, canonical["totallyUnknownField"])
}

func Test_convert_malformedKeys(t *testing.T) {
	persisted := Record{
		"batch_name": "ok",
		"weird-key!": "kept",
		"weird key":  "kept too",
	}

	canonical, flagged := ToCanonical(persisted)
	assert.Len(t, flagged, 2)
	assert.Contains(t, flagged, "weird-key!")
	assert.Equal(t, "kept", canonical["weird-key!"], "malformed keys pass through unchanged")
	assert.Equal(t, "ok", canonical["batchName"])
}

func Test_convert_nil(t *testing.T) {
	rec, flagged := ToCanonical(nil)
	assert.Nil(t, rec)
	assert.Empty(t, flagged)
}
