package main

import (
	"os"
	"testing"

	"github.com/bep/helpers/envhelpers"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestScripts(t *testing.T) {
	params := testscript.Params{
		Dir:   "testscripts",
		Setup: testSetupFunc(),
	}
	testscript.Run(t, params)
}

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"subbump": func() int { main(); return 0 },
	}))
}

func testSetupFunc() func(env *testscript.Env) error {
	return func(env *testscript.Env) error {
		envhelpers.SetEnvVars(&env.Vars,
			"SUBBUMP_VERSION", "0.0.0-test",
			"GIT_CONFIG_NOSYSTEM", "1",
		)
		return nil
	}
}
