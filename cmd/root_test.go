package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/bucket-browser/output"
)

const listingDoc = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>cli-bucket</Name>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>reports/2023.csv</Key>
    <LastModified>2023-01-01T00:00:00.000Z</LastModified>
    <Size>100</Size>
  </Contents>
  <Contents>
    <Key>reports/2021.csv</Key>
    <LastModified>2021-01-01T00:00:00.000Z</LastModified>
    <Size>50</Size>
  </Contents>
  <Contents>
    <Key>images/logo.png</Key>
    <LastModified>2022-01-01T00:00:00.000Z</LastModified>
    <Size>10</Size>
  </Contents>
</ListBucketResult>`

func listingServer(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// run executes the command tree with an empty config file so the user's config is ignored
func run(t *testing.T, args ...string) (string, error) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0644))

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func decodeView(t *testing.T, out string) output.ListingView {
	var view output.ListingView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	return view
}

func viewKeys(view output.ListingView) []string {
	keys := make([]string, len(view.Objects))
	for i, obj := range view.Objects {
		keys[i] = obj.Key
	}
	return keys
}

func TestLs_JSON(t *testing.T) {
	srv := listingServer(t, listingDoc)

	out, err := run(t, "ls", "--url", srv.URL, "--json", "--search", "REPORTS", "--sort", "asc")
	require.NoError(t, err)

	view := decodeView(t, out)
	assert.Equal(t, "cli-bucket", view.Name)
	assert.Equal(t, 3, view.TotalCount)
	assert.Equal(t, 2, view.Matched)
	assert.Equal(t, []string{"reports/2021.csv", "reports/2023.csv"}, viewKeys(view))
}

func TestLs_DefaultSortIsNewestFirst(t *testing.T) {
	srv := listingServer(t, listingDoc)

	out, err := run(t, "ls", "--url", srv.URL, "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/2023.csv", "images/logo.png", "reports/2021.csv"}, viewKeys(decodeView(t, out)))
}

func TestLs_Table(t *testing.T) {
	srv := listingServer(t, listingDoc)

	out, err := run(t, "ls", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "images/logo.png")
	assert.Contains(t, out, "cli-bucket")
}

func TestLs_Errors(t *testing.T) {
	srv := listingServer(t, "<ListBucketResult><Name>broken")

	_, err := run(t, "ls", "--url", srv.URL)
	assert.ErrorContains(t, err, "failed to parse listing")

	_, err = run(t, "ls", "--url", srv.URL, "--sort", "sideways")
	assert.ErrorContains(t, err, "unknown sort direction")

	_, err = run(t, "ls")
	assert.ErrorContains(t, err, "no listing source")

	_, err = run(t, "ls", "--url", srv.URL, "--bucket", "b")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestLs_OfflineCache(t *testing.T) {
	srv := listingServer(t, listingDoc)
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	_, err := run(t, "ls", "--url", srv.URL, "--offline", "--cache", cachePath)
	require.Error(t, err)
	assert.ErrorContains(t, err, "not in the cache")

	_, err = run(t, "ls", "--url", srv.URL, "--cache", cachePath)
	require.NoError(t, err)

	srv.Close()
	out, err := run(t, "ls", "--url", srv.URL, "--offline", "--cache", cachePath, "--json")
	require.NoError(t, err)
	assert.Equal(t, 3, decodeView(t, out).TotalCount)
}

func TestProfile_WritesReports(t *testing.T) {
	srv := listingServer(t, listingDoc)
	outDir := filepath.Join(t.TempDir(), "reports")

	out, err := run(t, "profile", "--url", srv.URL, "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Profiled cli-bucket: 3 objects")

	for _, name := range []string{"cli-bucket-summary.txt", "cli-bucket-metadata.txt", "cli-bucket-partitions.txt"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
}

func TestConfigFileSuppliesSource(t *testing.T) {
	srv := listingServer(t, listingDoc)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("url: "+srv.URL+"\nsort: asc\n"), 0644))

	var stdout bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "ls", "--json"})
	require.NoError(t, root.Execute())

	assert.Equal(t, []string{"reports/2021.csv", "images/logo.png", "reports/2023.csv"}, viewKeys(decodeView(t, stdout.String())))
}
