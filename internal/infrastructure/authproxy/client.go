package authproxy

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"profitdesk/internal/domain"
	"profitdesk/pkg/errcodes"
	"profitdesk/pkg/httpx"
	"profitdesk/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	userEndpoint      = "/auth/v1/user"
	adminUserEndpoint = "/auth/v1/admin/users/"

	requestTimeout = 10 * time.Second
	logFieldMaxLen = 2048
)

// User is the slice of the auth provider's user record this service needs.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client verifies end-user bearer tokens against the backend-as-a-service
// auth endpoint. It is constructed once and passed explicitly to whoever
// needs it; there is no ambient global client.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: baseURL,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
		},
	}
}

// UserFromToken resolves the user a bearer token belongs to. An invalid or
// expired token is an unauthorized condition, not an infrastructure fault.
func (c *Client) UserFromToken(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+userEndpoint, http.NoBody)
	if err != nil {
		return User{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	return parseUserResponse(resp)
}

// ServiceKeyAuthenticator satisfies the httpx authenticator contract with a
// static service key. Authenticate is a no-op: the key never rotates at
// runtime, so a 401 retry resends the same credential.
type ServiceKeyAuthenticator struct {
	serviceKey string
}

func NewServiceKeyAuthenticator(serviceKey string) ServiceKeyAuthenticator {
	return ServiceKeyAuthenticator{serviceKey: serviceKey}
}

func (a ServiceKeyAuthenticator) Authenticate(context.Context) error {
	return nil
}

func (a ServiceKeyAuthenticator) BearerToken() string {
	return a.serviceKey
}

// AdminClient calls the auth provider's admin surface with the service key.
type AdminClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewAdminClient(baseURL, anonKey, serviceKey string) *AdminClient {
	return &AdminClient{
		baseURL: baseURL,
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: httpx.NewAuthBearerRoundTripper(
				httpx.NewLoggingRoundTripper(
					http.DefaultTransport,
					httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
					httpx.WithLogFieldMaxLen(logFieldMaxLen),
				),
				NewServiceKeyAuthenticator(serviceKey),
			),
		},
	}
}

// GetUser fetches a user record by ID. Used to check that an access code is
// being issued to a user that actually exists.
func (c *AdminClient) GetUser(ctx context.Context, userID string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+adminUserEndpoint+userID, http.NoBody)
	if err != nil {
		return User{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Apikey", c.anonKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	return parseUserResponse(resp)
}

// UserExists reports whether the auth provider knows the user.
func (c *AdminClient) UserExists(ctx context.Context, userID string) error {
	_, err := c.GetUser(ctx, userID)

	return err
}

func parseUserResponse(resp *http.Response) (User, error) {
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return User{}, domain.NewError(errcodes.TokenInvalid, "auth service rejected token")
	case resp.StatusCode == http.StatusNotFound:
		return User{}, domain.NewError(errcodes.NotFound, "auth user not found")
	default:
		return User{}, domain.NewError(
			errcodes.InternalServerError,
			fmt.Sprintf("auth service returned status %d", resp.StatusCode),
		)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return User{}, domain.WrapError(err, errcodes.InternalServerError, "failed to decode auth user")
	}

	if user.ID == "" {
		return User{}, domain.NewError(errcodes.TokenInvalid, "auth user has no id")
	}

	return user, nil
}
