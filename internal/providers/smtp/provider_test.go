package smtp

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattiq/sendwithus/internal/core"
)

func TestNewVerifier(t *testing.T) {
	tests := []struct {
		name      string
		creds     core.EspCredentials
		wantField string
	}{
		{name: "missing host", creds: core.EspCredentials{"port": "25"}, wantField: "host"},
		{name: "missing port", creds: core.EspCredentials{"host": "smtp.example.com"}, wantField: "port"},
		{name: "invalid port", creds: core.EspCredentials{"host": "smtp.example.com", "port": "smtp"}, wantField: "port"},
		{name: "port out of range", creds: core.EspCredentials{"host": "smtp.example.com", "port": "70000"}, wantField: "port"},
		{name: "valid", creds: core.EspCredentials{"host": "smtp.example.com", "port": "587", "tls": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVerifier(tt.creds)
			if tt.wantField != "" {
				var validationErr *core.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.wantField, validationErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "smtp", v.Name())
			assert.True(t, v.useTLS)
		})
	}
}

func TestVerifyUnreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().(*net.TCPAddr)
	require.NoError(t, listener.Close())

	v, err := NewVerifier(core.EspCredentials{"host": "127.0.0.1", "port": strconv.Itoa(addr.Port)})
	require.NoError(t, err)

	err = v.Verify(context.Background())
	var providerErr *core.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, core.ProviderCodeUnreachable, providerErr.Code)
}
