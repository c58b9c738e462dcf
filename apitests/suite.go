package apitests

import (
	"github.com/restcheck/rest-api-tests/apiclient"
	"github.com/restcheck/rest-api-tests/config"
	"github.com/restcheck/rest-api-tests/framework"
)

// RunTestSuite runs all of the test groups against the configured services,
// returning the accumulated results.
func RunTestSuite(
	cfg config.Config,
	recorder apiclient.Recorder,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		env := &environment{cfg: cfg, recorder: recorder}
		t := &T{context: c, env: env}

		t.Run("basic CRUD", DoCRUDTests)
		t.Run("auth and security", DoAuthTests)
		t.Run("relationships and filtering", DoRelationshipTests)
		t.Run("error handling", DoErrorHandlingTests)
		t.Run("performance", DoPerformanceTests)
	})
}
