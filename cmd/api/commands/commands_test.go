package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStoreInitAndCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("STORE_DIR", dir)

	out, err := execute(t, NewStoreCommand(), "check")
	require.NoError(t, err)
	assert.Contains(t, out, "missing")

	out, err = execute(t, NewStoreCommand(), "init")
	require.NoError(t, err)
	assert.Contains(t, out, dir)

	for _, name := range []string{"users.json", "admin.json", "designs.json", "pages.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, "[]", string(bytes.TrimSpace(data)), name)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "designs.json"), []byte("{oops"), 0o644))
	out, err = execute(t, NewStoreCommand(), "check")
	require.Error(t, err)
	assert.Contains(t, out, "ERROR")
}

func TestAdminCreate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DIR", dir)

	out, err := execute(t, NewAdminCommand(), "create", "--username", "root", "--password", "hunter22")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: root")
	assert.Contains(t, out, "Password scheme: plain")

	_, err = execute(t, NewAdminCommand(), "create", "--username", "root", "--password", "another1")
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "admin.json"))
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(data, []byte(`"username"`)))
}

func TestUserList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STORE_DIR", dir)
	users := `[{"id":"user-1","name":"Ada","email":"ada@x.com","password":"secret1","avatarUrl":""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(users), 0o644))

	out, err := execute(t, NewUserCommand(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@x.com")
	assert.Contains(t, out, "1 users")

	out, err = execute(t, NewUserCommand(), "list", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Ada"`)
	assert.NotContains(t, out, "secret1")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "Reactiverse Core dev")
}
