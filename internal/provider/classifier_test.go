package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantClass    Classification
		wantMessage  string
		wantAdvisory string
	}{
		{
			name:        "explicit error message",
			body:        `{"Error Message": "Invalid API call. Please retry or visit the documentation."}`,
			wantClass:   ClassHardError,
			wantMessage: "Invalid API call. Please retry or visit the documentation.",
		},
		{
			name:         "note with frequency marker",
			body:         `{"Note": "Our standard API call frequency is 5 calls per minute."}`,
			wantClass:    ClassRateLimited,
			wantAdvisory: "Our standard API call frequency is 5 calls per minute.",
		},
		{
			name:         "marker match is case insensitive",
			body:         `{"Note": "You have reached your CALL LIMIT for today."}`,
			wantClass:    ClassRateLimited,
			wantAdvisory: "You have reached your CALL LIMIT for today.",
		},
		{
			name:         "information field with api call marker",
			body:         `{"Information": "Thank you for using our API call service."}`,
			wantClass:    ClassRateLimited,
			wantAdvisory: "Thank you for using our API call service.",
		},
		{
			name:         "advisory without quota marker is ambiguous",
			body:         `{"Note": "Premium endpoint"}`,
			wantClass:    ClassAmbiguousAdvisory,
			wantAdvisory: "Premium endpoint",
		},
		{
			name:         "note takes precedence over information",
			body:         `{"Note": "Premium endpoint", "Information": "call limit reached"}`,
			wantClass:    ClassAmbiguousAdvisory,
			wantAdvisory: "Premium endpoint",
		},
		{
			name:        "error message wins over advisory",
			body:        `{"Error Message": "bad symbol", "Note": "call limit reached"}`,
			wantClass:   ClassHardError,
			wantMessage: "bad symbol",
		},
		{
			name:      "plain data payload is success",
			body:      `{"Symbol": "AAPL", "Name": "Apple Inc"}`,
			wantClass: ClassSuccess,
		},
		{
			name:      "empty object is success",
			body:      `{}`,
			wantClass: ClassSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Classify([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantClass, result.Class, "class")
			assert.Equal(t, tt.wantMessage, result.Message, "message")
			assert.Equal(t, tt.wantAdvisory, result.Advisory, "advisory")
		})
	}
}

func TestClassifyMalformedBody(t *testing.T) {
	_, err := Classify([]byte("<html>maintenance page</html>"))
	assert.Error(t, err)
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "success", ClassSuccess.String())
	assert.Equal(t, "hard_error", ClassHardError.String())
	assert.Equal(t, "rate_limited", ClassRateLimited.String())
	assert.Equal(t, "ambiguous_advisory", ClassAmbiguousAdvisory.String())
}
