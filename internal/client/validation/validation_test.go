package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileSize(t *testing.T) {
	const ceiling = 10 << 20

	res := ValidateFileSize([]File{{Name: "a.png", Size: 1}, {Name: "b.pdf", Size: ceiling}}, ceiling)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Message)

	res = ValidateFileSize([]File{{Name: "a.png", Size: 1}, {Name: "big.mov", Size: ceiling + 1}, {Name: "huge.iso", Size: ceiling * 4}}, ceiling)
	assert.False(t, res.Valid)
	assert.Equal(t, `File "big.mov" exceeds 10 MiB limit.`, res.Message)

	assert.True(t, ValidateFileSize(nil, ceiling).Valid)
}

func TestValidateURL(t *testing.T) {
	for _, kind := range []URLKind{Any, GitHub, Figma} {
		assert.False(t, ValidateURL("not-a-url", kind).Valid)
		assert.Equal(t, "URL is required.", ValidateURL("  ", kind).Message)
	}

	repo := "https://github.com/acme/repo"
	assert.True(t, ValidateURL(repo, GitHub).Valid)
	assert.True(t, ValidateURL(repo, Any).Valid)
	assert.False(t, ValidateURL(repo, Figma).Valid)

	assert.True(t, ValidateURL("HTTPS://WWW.GitHub.com/acme", GitHub).Valid)
	assert.True(t, ValidateURL("https://www.figma.com/file/abc", Figma).Valid)
	assert.True(t, ValidateURL("https://figma.app/x", Figma).Valid)

	assert.Equal(t, "Please enter a valid GitHub URL.", ValidateURL("https://gitlab.com/x", GitHub).Message)
	assert.Equal(t, "Please enter a valid Figma URL.", ValidateURL(repo, Figma).Message)
	assert.Equal(t, "Please enter a valid http(s) URL.", ValidateURL("ftp://host/x", Any).Message)
}

type mapGetter map[string]string

func (m mapGetter) Get(key string) string { return m[key] }

func TestResolveTeamName(t *testing.T) {
	assert.Equal(t, "acme", ResolveTeamName(mapGetter{"team_name": "  acme "}, "xyz"))
	assert.Equal(t, "xyz", ResolveTeamName(mapGetter{"team_name": "   "}, "xyz"))
	assert.Equal(t, "xyz", ResolveTeamName(mapGetter{}, "xyz"))
	assert.Equal(t, "xyz", ResolveTeamName(nil, "xyz"))
}

func TestParseAPIError(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"detail":"Team not registered"}`, "Team not registered"},
		{`{"detail":{"msg":"bad link"}}`, "bad link"},
		{`{"detail":[{"loc":["body","abstract"],"msg":"field required","type":"value_error.missing"}]}`, "field required"},
		{`{"detail":42}`, "42"},
		{`{"detail":{"code":7}}`, `{"code":7}`},
		{`{"other":"x"}`, "Submission failed: 500"},
		{`<html>oops</html>`, "Submission failed: 500"},
		{``, "Submission failed: 500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAPIError([]byte(tc.body), 500), tc.body)
	}
}
