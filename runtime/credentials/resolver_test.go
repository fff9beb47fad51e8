package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/CrimsonX77/Aurora/pkg/config"
	pkgerrors "github.com/CrimsonX77/Aurora/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FromProcessEnvironment(t *testing.T) {
	env := config.NewEnvironment(map[string]string{"MISTRAL_API_KEY": "mk-process"}, nil)

	cred, err := Resolve(env)
	require.NoError(t, err)
	assert.Equal(t, "api_key", cred.Type())
	assert.Equal(t, "mk-process", cred.APIKey())
}

func TestResolve_ProcessWinsOverFile(t *testing.T) {
	env := config.NewEnvironment(
		map[string]string{"MISTRAL_API_KEY": "mk-process"},
		map[string]string{"MISTRAL_API_KEY": "mk-file"},
	)

	cred, err := Resolve(env)
	require.NoError(t, err)
	assert.Equal(t, "mk-process", cred.APIKey())
}

func TestResolve_BareTokenEnvFile(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")
	os.Unsetenv("MISTRAL_API_KEY")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("  abc123\n"), 0o600))

	env, err := config.LoadEnvironment(path)
	require.NoError(t, err)

	cred, err := Resolve(env)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cred.APIKey())
}

func TestResolve_Missing(t *testing.T) {
	for name, env := range map[string]*config.Environment{
		"nil":   nil,
		"empty": config.NewEnvironment(nil, nil),
		"other": config.NewEnvironment(map[string]string{"MISTRAL_KEY": "mk-test"}, nil),
	} {
		t.Run(name, func(t *testing.T) {
			cred, err := Resolve(env)
			require.Error(t, err)
			assert.Nil(t, cred)
			assert.True(t, errors.Is(err, pkgerrors.ErrConfiguration))
			assert.Contains(t, err.Error(), "MISTRAL_API_KEY")
			assert.Contains(t, err.Error(), "environment")
			assert.Contains(t, err.Error(), ".env")
		})
	}
}

func TestResolve_SetButEmptyIsUsedAsIs(t *testing.T) {
	env := config.NewEnvironment(map[string]string{"MISTRAL_API_KEY": ""}, nil)

	cred, err := Resolve(env)
	require.NoError(t, err)
	assert.Empty(t, cred.APIKey())
}

func TestResolveVar_CustomName(t *testing.T) {
	env := config.NewEnvironment(map[string]string{"OTHER_KEY": " k "}, nil)

	_, err := resolveVar(env, "MISSING_KEY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING_KEY")

	cred, err := resolveVar(env, "OTHER_KEY")
	require.NoError(t, err)
	assert.Equal(t, " k ", cred.APIKey())
}

func TestAPIKeyCredential_Apply(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)
	require.NoError(t, NewAPIKeyCredential("mk-test").Apply(context.Background(), req))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer mk-test", gotAuth)
}

func TestAPIKeyCredential_Header(t *testing.T) {
	name, value := NewAPIKeyCredential("mk-test").Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Bearer mk-test", value)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	require.NoError(t, NewAPIKeyCredential("").Apply(context.Background(), req))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestAPIKeyCredential_Redacted(t *testing.T) {
	cred := NewAPIKeyCredential("mk-secret-value")
	assert.Equal(t, "mk-s...[REDACTED]", cred.Redacted())
	assert.Equal(t, "api_key(Authorization: Bearer mk-s...[REDACTED])", cred.String())
	assert.NotContains(t, fmt.Sprint(cred), "secret")

	assert.Equal(t, "[REDACTED]", NewAPIKeyCredential("abcd").Redacted())
}
