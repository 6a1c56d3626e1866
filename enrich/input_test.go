package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeURLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCleanURL(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"https://femgineers.example.org", "https://femgineers.example.org"},
		{"  https://femgineers.example.org  ", "https://femgineers.example.org"},
		{"https://femgineers.example.org,", "https://femgineers.example.org"},
		{"https://a.example.org, keep an eye - not free", "https://a.example.org"},
		{"https://a.example.org , some note", "https://a.example.org"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanURL(tc.input), "input %q", tc.input)
	}
}

func TestReadURLList(t *testing.T) {
	path := writeURLFile(t, `https://femgineers.example.org
https://codefirstgirls.example.org, annotation text
https://womenwhocode.example.org
`)

	urls, err := ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://femgineers.example.org",
		"https://codefirstgirls.example.org",
		"https://womenwhocode.example.org",
	}, urls)
}

func TestReadURLList_SkipsEmptyRows(t *testing.T) {
	path := writeURLFile(t, "https://a.example.org\n\n\nhttps://b.example.org\n")

	urls, err := ReadURLList(path)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestReadURLList_MissingFile(t *testing.T) {
	_, err := ReadURLList(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
