package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"profitdesk/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"accessToken":"eyJhbGciOiJFUzI1NiIsInR5cC","refreshToken":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9"}`),
			output: []byte(`{"accessToken":"[MASKED]","refreshToken":"[MASKED]"}`),
		},
		{
			name:   "Access code and hash",
			input:  []byte(`{"userId":"u-1","code":"1234-5678","accessCodeHash":"9f86d081884c7d65"}`),
			output: []byte(`{"userId":"u-1","code":"[MASKED]","accessCodeHash":"[MASKED]"}`),
		},
		{
			name:   "Bearer and apikey headers",
			input:  []byte("GET /auth/v1/user HTTP/1.1\r\nAuthorization: Bearer eyJhbGciOiJI\r\nApikey: anon-key-value\r\n\r\n"),
			output: []byte("GET /auth/v1/user HTTP/1.1\r\nAuthorization: Bearer [MASKED]\r\nApikey: [MASKED]\r\n\r\n"),
		},
		{
			name:   "Email",
			input:  []byte(`{"profile": {"email": "john@doe.com"}, "isMarketingConsentPermitted": true}`),
			output: []byte(`{"profile": {"email": "[MASKED]"}, "isMarketingConsentPermitted": true}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
