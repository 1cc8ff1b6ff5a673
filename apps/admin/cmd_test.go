package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classforge/classforge/core"
)

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	var createdbCalled, migrateCalled bool
	createIfNotExistFunc = func(conf *core.Config) error {
		createdbCalled = true
		return nil
	}
	migrateFunc = func(conf *core.Config) error {
		migrateCalled = true
		return nil
	}

	cli := &commandLine{conf: &core.Config{}}

	tests := []cliTest{
		{name: "no args prints usage", args: []string{}, wantErr: errHelp},
		{name: "unknown command prints usage", args: []string{"frobnicate"}, wantErr: errHelp},
		{name: "createdb", args: []string{"createdb"}},
		{name: "migrate", args: []string{"migrate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
		})
	}
	assert.True(t, createdbCalled)
	assert.True(t, migrateCalled)
}
