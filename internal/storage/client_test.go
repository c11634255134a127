package storage

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadSendsSignedMultipart(t *testing.T) {
	entityID := uuid.New()
	var got struct {
		publicID  string
		apiKey    string
		signature string
		timestamp string
		file      []byte
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))

		got.publicID = r.FormValue("public_id")
		got.apiKey = r.FormValue("api_key")
		got.signature = r.FormValue("signature")
		got.timestamp = r.FormValue("timestamp")

		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		got.file, err = io.ReadAll(f)
		require.NoError(t, err)

		fmt.Fprintf(w, `{"public_id":%q,"secure_url":"https://blobs/%s","bytes":%d}`,
			got.publicID, got.publicID, len(got.file))
	}))
	defer srv.Close()

	c := New(srv.URL, "key123", "secret456", "materials")
	result, err := c.Upload(entityID, "Notes Week 1.PDF", []byte("pdf-bytes"))
	require.NoError(t, err)

	// Path shape: {bucket}/{entityID}/{12 hex chars}{lowercased ext}
	shape := regexp.MustCompile("^materials/" + entityID.String() + "/[0-9a-f]{12}\\.pdf$")
	assert.Regexp(t, shape, got.publicID)
	assert.Equal(t, got.publicID, result.PublicID)
	assert.Equal(t, "https://blobs/"+got.publicID, result.SecureURL)

	assert.Equal(t, "key123", got.apiKey)
	assert.NotEmpty(t, got.timestamp)
	assert.Equal(t, []byte("pdf-bytes"), got.file)

	// Signature covers public_id and timestamp but never api_key.
	want := c.sign(map[string]string{
		"public_id": got.publicID,
		"timestamp": got.timestamp,
		"api_key":   "key123",
	})
	assert.Equal(t, want, got.signature)
}

func TestUploadFillsPublicIDWhenResponseOmitsIt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"bytes":9}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "s", "reports")
	result, err := c.Upload(uuid.New(), "a.txt", []byte("plaintext"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.PublicID)
}

func TestUploadSurfacesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid signature"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "wrong", "materials")
	_, err := c.Upload(uuid.New(), "a.pdf", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSignExcludesAPIKeyAndEmptyValues(t *testing.T) {
	c := &Client{APISecret: "s3cr3t"}

	base := c.sign(map[string]string{"public_id": "p", "timestamp": "1"})
	withKey := c.sign(map[string]string{"public_id": "p", "timestamp": "1", "api_key": "abc"})
	withEmpty := c.sign(map[string]string{"public_id": "p", "timestamp": "1", "folder": ""})

	assert.Equal(t, base, withKey)
	assert.Equal(t, base, withEmpty)
	assert.NotEqual(t, base, c.sign(map[string]string{"public_id": "other", "timestamp": "1"}))
}
