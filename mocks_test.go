package forwardauth_test

import (
	"context"

	"github.com/goliatone/go-forwardauth"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements forwardauth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string, withRole bool) (*forwardauth.User, error) {
	args := m.Called(ctx, email, withRole)
	user, _ := args.Get(0).(*forwardauth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) CreateWithDefaultRole(ctx context.Context, record *forwardauth.User) (*forwardauth.User, error) {
	args := m.Called(ctx, record)
	user, _ := args.Get(0).(*forwardauth.User)
	return user, args.Error(1)
}

func (m *MockUserStore) Save(ctx context.Context, record *forwardauth.User) (*forwardauth.User, error) {
	args := m.Called(ctx, record)
	user, _ := args.Get(0).(*forwardauth.User)
	return user, args.Error(1)
}

// MockRoleStore implements forwardauth.RoleStore
type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) FindByID(ctx context.Context, id uuid.UUID) (*forwardauth.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*forwardauth.Role)
	return role, args.Error(1)
}

// MockSessionIssuer implements forwardauth.SessionIssuer
type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) IssueSessionCookie(ctx router.Context, user *forwardauth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// testConfig is a plain Config implementation with package defaults.
type testConfig struct {
	trustedHeader     string
	accessTokenHeader string
	sessionCookie     string
	markerCookie      string
	logoutPath        string
	signOutPath       string
	upstreamLogoutURL string
	ignorePrefixes    []string
}

func newTestConfig() *testConfig {
	return &testConfig{
		trustedHeader:     "X-Forwarded-Email",
		accessTokenHeader: forwardauth.HeaderAccessToken,
		sessionCookie:     forwardauth.DefaultSessionCookieName,
		markerCookie:      forwardauth.DefaultLogoutMarkerCookieName,
		logoutPath:        forwardauth.DefaultLogoutPath,
		signOutPath:       forwardauth.DefaultSignOutPath,
		ignorePrefixes:    forwardauth.DefaultIgnorePrefixes(),
	}
}

func (c *testConfig) GetTrustedHeader() string          { return c.trustedHeader }
func (c *testConfig) GetAccessTokenHeader() string      { return c.accessTokenHeader }
func (c *testConfig) GetSessionCookieName() string      { return c.sessionCookie }
func (c *testConfig) GetLogoutMarkerCookieName() string { return c.markerCookie }
func (c *testConfig) GetLogoutPath() string             { return c.logoutPath }
func (c *testConfig) GetSignOutPath() string            { return c.signOutPath }
func (c *testConfig) GetUpstreamLogoutURL() string      { return c.upstreamLogoutURL }
func (c *testConfig) GetIgnorePrefixes() []string       { return c.ignorePrefixes }

// MockContext mocks the router.Context
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}
