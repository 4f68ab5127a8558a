package internal

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/db/dbtest"
)

func configCtx() context.Context {
	return ctxhelper.WithLogger(context.Background(), dbtest.Logger())
}

// unsetAfter removes the given variables now and once the test has finished
func unsetAfter(t *testing.T, names ...string) {
	for _, n := range names {
		os.Unsetenv(n)
	}
	t.Cleanup(func() {
		for _, n := range names {
			os.Unsetenv(n)
		}
	})
}

func TestConfigDefaultsWithoutFiles(t *testing.T) {
	unsetAfter(t, EnvDataDir, EnvDatabase, EnvListenAddress, EnvTimeZone, EnvRequestTimeout, EnvMaxOpenConns, EnvLogLevel)
	dir := t.TempDir()
	cs := NewConfigService(filepath.Join(dir, "config.json"), filepath.Join(dir, ".env"))
	require.NoError(t, cs.Load(configCtx()))
	conf := cs.GetConfig(configCtx())
	assert.Equal(t, ":5000", conf.ListenAddress)
	assert.Equal(t, "fyyur.db", conf.Database)
	assert.Equal(t, 4, conf.MaxOpenConns)
}

func TestConfigLayering(t *testing.T) {
	unsetAfter(t, EnvDataDir, EnvDatabase, EnvListenAddress, EnvTimeZone, EnvRequestTimeout, EnvMaxOpenConns, EnvLogLevel)
	dir := t.TempDir()
	confFile := filepath.Join(dir, "config.json")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, ioutil.WriteFile(confFile, []byte(
		`{"listenAddress": ":8080", "database": "file.db", "timeZone": "UTC", "maxOpenConns": 2}`,
	), 0600))
	require.NoError(t, ioutil.WriteFile(envFile, []byte("FYYUR_DATABASE=env.db\nFYYUR_LOG_LEVEL=debug\n"), 0600))
	os.Setenv(EnvLogLevel, "warn")

	cs := NewConfigService(confFile, envFile)
	require.NoError(t, cs.Load(configCtx()))
	conf := cs.GetConfig(configCtx())
	assert.Equal(t, ":8080", conf.ListenAddress)
	assert.Equal(t, 2, conf.MaxOpenConns)
	assert.Equal(t, "env.db", conf.Database)
	// Variables set in the process environment win over the dotenv file
	assert.Equal(t, "warn", conf.LogLevel)

	out := filepath.Join(dir, "written.json")
	require.NoError(t, cs.WriteToFile(configCtx(), out))
	cs2 := NewConfigService(out, "")
	os.Unsetenv(EnvDatabase)
	os.Unsetenv(EnvLogLevel)
	require.NoError(t, cs2.Load(configCtx()))
	assert.Equal(t, conf, cs2.GetConfig(configCtx()))
}

func TestConfigErrors(t *testing.T) {
	unsetAfter(t, EnvMaxOpenConns)
	dir := t.TempDir()
	confFile := filepath.Join(dir, "config.json")
	require.NoError(t, ioutil.WriteFile(confFile, []byte("{not json"), 0600))
	assert.Error(t, NewConfigService(confFile, "").Load(configCtx()))

	os.Setenv(EnvMaxOpenConns, "many")
	assert.Error(t, NewConfigService(filepath.Join(dir, "missing.json"), "").Load(configCtx()))
}
