package gazette

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchSendsCredentialHeaders(t *testing.T) {
	var gotPath, gotCookie, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCookie = r.Header.Get("cookie")
		gotAgent = r.Header.Get("user-agent")
		w.Write([]byte("<html><body>stories</body></html>"))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	doc, err := client.Fetch(context.Background(), Credential{Value: "session=abc123"})
	require.NoError(t, err)

	require.Equal(t, "/stories", gotPath)
	require.Equal(t, "session=abc123", gotCookie)
	require.NotEmpty(t, gotAgent)

	require.Equal(t, http.StatusOK, doc.StatusCode)
	require.Contains(t, string(doc.Body), "stories")
	require.False(t, doc.FetchedAt.IsZero())
}

func TestFetchUpstreamRefusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("<html>session expired</html>"))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	doc, err := client.Fetch(context.Background(), Credential{Value: "session=old"})

	var statusErr StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusForbidden, statusErr.Code)

	// the refused body still comes back for diagnostics
	require.Equal(t, http.StatusForbidden, doc.StatusCode)
	require.Contains(t, string(doc.Body), "session expired")
}

func TestNewClientDefaultsToProduction(t *testing.T) {
	client, err := NewClient(context.Background(), ClientOptions{})
	require.NoError(t, err)
	require.Equal(t, BaseUrl, client.BaseUrl.String())
}
