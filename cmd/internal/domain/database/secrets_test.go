package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretaria/cmd/internal/config"
)

func TestRetrieveCredentials_PrefersEnvironment(t *testing.T) {
	user, pass, err := retrieveCredentials(&config.DBConfig{Username: "app", Password: "s3cret", SecretID: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "app", user)
	assert.Equal(t, "s3cret", pass)
}

func TestRetrieveCredentials_NothingConfigured(t *testing.T) {
	_, _, err := retrieveCredentials(&config.DBConfig{})
	assert.Error(t, err)
}

func TestParseCredentials(t *testing.T) {
	user, pass, err := parseCredentials(`{"username":"secretaria","password":"pw"}`)
	require.NoError(t, err)
	assert.Equal(t, "secretaria", user)
	assert.Equal(t, "pw", pass)

	_, _, err = parseCredentials(`{"username":"secretaria"}`)
	assert.Error(t, err)

	_, _, err = parseCredentials(`not json`)
	assert.Error(t, err)
}

func TestOpenInMemory_Migrates(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	for _, model := range Models {
		assert.True(t, db.Migrator().HasTable(model))
	}
}
