package sshconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `Host a
    HostName 10.0.0.1

Host b
    HostName 10.0.0.2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseRoundTrip(t *testing.T) {
	assert.Equal(t, sampleConfig, Parse("config", sampleConfig).String())
	assert.Equal(t, "", Parse("config", "").String())

	noNewline := "Host a\n    HostName 10.0.0.1"
	assert.Equal(t, noNewline, Parse("config", noNewline).String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestListHostnames(t *testing.T) {
	doc := Parse("config", sampleConfig)
	assert.Equal(t, []string{"a -> 10.0.0.1", "b -> 10.0.0.2"}, doc.ListHostnames())
}

func TestListHostnamesRepeatedHostNameLines(t *testing.T) {
	doc := Parse("config", `Host a
    HostName 10.0.0.1
    HostName 10.0.0.9
`)
	assert.Equal(t, []string{"a -> 10.0.0.1", "a -> 10.0.0.9"}, doc.ListHostnames())
}

func TestListHostnamesSkipsOrphanHostName(t *testing.T) {
	doc := Parse("config", "HostName 10.0.0.1\n")
	assert.Empty(t, doc.ListHostnames())
}

func TestUpdateHostname(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.UpdateHostname("a", "2.2.2.2"))
	require.NoError(t, doc.Save())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `Host a
    HostName 2.2.2.2

Host b
    HostName 10.0.0.2
`, string(got))
}

func TestUpdateHostnameCaseInsensitive(t *testing.T) {
	doc := Parse("config", sampleConfig)
	require.NoError(t, doc.UpdateHostname("A", "2.2.2.2"))
	assert.Contains(t, doc.String(), "HostName 2.2.2.2")
}

func TestUpdateHostnameUnknownHost(t *testing.T) {
	doc := Parse("config", sampleConfig)
	err := doc.UpdateHostname("c", "9.9.9.9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHostNotFound))
	assert.Equal(t, sampleConfig, doc.String())
}

func TestUpdateHostnameExtraTokensDoNotMatch(t *testing.T) {
	doc := Parse("config", "Host a extra\n    HostName 10.0.0.1\n")
	err := doc.UpdateHostname("a", "2.2.2.2")
	assert.True(t, errors.Is(err, ErrHostNotFound))
}

func TestUpdateHostnameNoHostNameLine(t *testing.T) {
	content := "Host a\n    User alice\n"
	doc := Parse("config", content)

	// A matched block without a HostName line is a successful no-op.
	require.NoError(t, doc.UpdateHostname("a", "2.2.2.2"))
	assert.Equal(t, content, doc.String())
}

func TestUpdateHostnameLeavesOtherBlocksAlone(t *testing.T) {
	doc := Parse("config", `Host a
    HostName 10.0.0.1
Host aa
    HostName 10.0.0.3
`)
	require.NoError(t, doc.UpdateHostname("a", "2.2.2.2"))
	assert.Contains(t, doc.String(), "HostName 10.0.0.3")
}

func TestAddHost(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	doc, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, doc.AddHost("c", "testuser"))
	require.NoError(t, doc.Save())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(got)
	assert.Contains(t, content, "Host c\n")
	assert.Contains(t, content, "    HostName "+PlaceholderIP)
	assert.Contains(t, content, "google_compute_engine")
	assert.Contains(t, content, "UserKnownHostsFile=")
	assert.Contains(t, content, "    IdentitiesOnly=yes")
	assert.Contains(t, content, "    CheckHostIP=no")
	assert.Contains(t, content, "    User testuser")
}

func TestAddHostAlreadyExists(t *testing.T) {
	doc := Parse("config", sampleConfig)
	require.NoError(t, doc.AddHost("c", "testuser"))

	before := doc.String()
	err := doc.AddHost("c", "testuser")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHostExists))
	assert.Equal(t, before, doc.String())
}

func TestAddHostThenUpdateHostname(t *testing.T) {
	doc := Parse("config", "")
	require.NoError(t, doc.AddHost("c", "testuser"))

	// The placeholder guarantees the patch step has a line to rewrite.
	require.NoError(t, doc.UpdateHostname("c", "5.5.5.5"))
	assert.Contains(t, doc.String(), "    HostName 5.5.5.5")
	assert.NotContains(t, doc.String(), PlaceholderIP)
}

func TestWildcardBlockIsJustAName(t *testing.T) {
	doc := Parse("config", "Host *\n    HostName 10.0.0.1\n")
	assert.True(t, errors.Is(doc.UpdateHostname("a", "2.2.2.2"), ErrHostNotFound))
	require.NoError(t, doc.UpdateHostname("*", "2.2.2.2"))
	assert.Contains(t, doc.String(), "HostName 2.2.2.2")
}
