package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "SearchPerformedEvent/1.0.0", generateKeyFromPath("events", "Event", "events/search-performed/v1.json"))
	assert.Equal(t, "PropertiesResponse/2.0.0", generateKeyFromPath("api", "", "api/properties-response/v2.json"))
	assert.Equal(t, "", generateKeyFromPath("api", "", "api/broken.json"))
}

func TestValidateEvent(t *testing.T) {
	valid := []byte(`{
		"eventId": "0b9f4a3e-2f6c-4d8e-9d36-6f1c2b7a9e10",
		"occurredAt": "2024-03-01T10:00:00Z",
		"page": 1,
		"resultCount": 2,
		"totalCount": 2,
		"filters": {"search": "goa", "propertyType": "VILLA", "hasBounds": false, "featuredOnly": false}
	}`)
	require.NoError(t, ValidateEvent("SearchPerformedEvent", "1.0.0", valid))

	invalid := []byte(`{"eventId": "x", "page": 0, "filters": {}}`)
	assert.Error(t, ValidateEvent("SearchPerformedEvent", "1.0.0", invalid))

	assert.Error(t, ValidateEvent("UnknownEvent", "1.0.0", valid))
	assert.Error(t, ValidateEvent("SearchPerformedEvent", "1.0.0", []byte("{")))
}

func TestValidateResponse(t *testing.T) {
	ok := []byte(`{
		"success": true,
		"data": [{"id": "p1", "title": "Villa", "slug": "villa", "price": 100, "propertyType": "VILLA", "bedrooms": null}],
		"pagination": {"page": 1, "limit": 12, "total": 1, "pages": 1}
	}`)
	require.NoError(t, ValidateResponse("PropertiesResponse", "1.0.0", ok))

	failure := []byte(`{"success": false, "error": "boom"}`)
	require.NoError(t, ValidateResponse("PropertiesResponse", "1.0.0", failure))

	wrongType := []byte(`{"success": true, "data": [{"id": 1, "title": "x", "slug": "x", "price": "cheap", "propertyType": "VILLA"}]}`)
	assert.Error(t, ValidateResponse("PropertiesResponse", "1.0.0", wrongType))

	locations := []byte(`{"success": true, "data": [{"id": "l1", "name": "North Goa", "slug": "north-goa", "type": "major", "propertyCount": 3}]}`)
	require.NoError(t, ValidateResponse("LocationsResponse", "1.0.0", locations))
}
