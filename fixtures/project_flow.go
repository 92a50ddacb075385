package fixtures

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ynput/ayon-test-fixtures/client"
	"github.com/ynput/ayon-test-fixtures/framework"
	"github.com/ynput/ayon-test-fixtures/scaffold"
)

// DoProjectScaffoldTests builds one disposable project fixture and checks
// the shape of what came back before tearing it down again.
func DoProjectScaffoldTests(t *framework.Context, env *environment) {
	t.Run("scaffold and teardown", func(t *framework.Context) {
		session := client.NewSession(env.cfg.Server, t.DebugLogger())
		project, err := scaffold.NewBuilder(session, t.DebugLogger()).Create()
		require.NoError(t, err)
		t.Defer(func() {
			if err := project.Teardown(); err != nil {
				t.Errorf("tearing down project: %s", err)
			}
		})

		info := project.Info
		assert.NotEmpty(t, info.ProjectName)
		assert.NotEmpty(t, info.ProjectCode)
		assert.NotEmpty(t, info.Folder.ID)
		assert.NotEmpty(t, info.Task.ID)
		assert.NotEmpty(t, info.Product.ID)
		assert.NotEmpty(t, info.Version.ID)
		assert.Len(t, info.Representations, 4)
		assert.Len(t, info.Links, 2)
		for _, rep := range info.Representations {
			assert.NotEmpty(t, rep.ID, "representation %s has no id", rep.Name)
		}
	})
}
