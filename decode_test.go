package sendwithus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	t.Run("missing optional field takes default", func(t *testing.T) {
		var template Template
		require.NoError(t, decodeResponse([]byte(`{"id":"tem_1","name":"Welcome"}`), &template))

		assert.Equal(t, "tem_1", template.ID)
		assert.Equal(t, DefaultLocale, template.Locale)
		assert.Empty(t, template.Versions)
	})

	t.Run("present field overrides default", func(t *testing.T) {
		var template Template
		require.NoError(t, decodeResponse([]byte(`{"id":"tem_1","locale":"de-DE"}`), &template))
		assert.Equal(t, "de-DE", template.Locale)
	})

	t.Run("defaults apply inside slices", func(t *testing.T) {
		var templates []Template
		require.NoError(t, decodeResponse([]byte(`[{"id":"a"},{"id":"b","locale":"fr-FR"}]`), &templates))

		require.Len(t, templates, 2)
		assert.Equal(t, DefaultLocale, templates[0].Locale)
		assert.Equal(t, "fr-FR", templates[1].Locale)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		var status APIStatus
		require.NoError(t, decodeResponse([]byte(`{"success":true,"status":"OK","extra":{"a":1}}`), &status))
		assert.True(t, status.Success)
		assert.Equal(t, "OK", status.Status)
	})

	t.Run("nil target discards body", func(t *testing.T) {
		assert.NoError(t, decodeResponse([]byte(`not json`), nil))
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid JSON", body: `{"id":`},
		{name: "wrong field type", body: `{"id":5}`},
		{name: "array instead of object", body: `[1,2,3]`},
		{name: "empty body", body: ``},
		{name: "whitespace body", body: " \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var template Template
			err := decodeResponse([]byte(tt.body), &template)
			require.Error(t, err)

			assert.True(t, IsDecodeError(err))
			assert.False(t, IsRetryable(err))

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, KindDecode, apiErr.Kind)
		})
	}
}
