package catalog

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorhub/mira/pkg/executor"
	"github.com/advisorhub/mira/pkg/models"
)

func TestDefaultTemplatesDeclareHandlers(t *testing.T) {
	t.Parallel()

	cat := New()
	templates := cat.Templates()
	require.NotEmpty(t, templates)

	for _, template := range templates {
		assert.Equal(t, template.ID, template.Action.ID, "template id and action id must match")
		assert.NotEmpty(t, template.Action.HandlerKey, "template %s missing handler key", template.ID)
		assert.NotEmpty(t, template.Action.Category, "template %s missing category", template.ID)
	}
}

func TestGetAndByCategory(t *testing.T) {
	t.Parallel()

	cat := New()

	template, ok := cat.Get("create_lead")
	require.True(t, ok)
	assert.Equal(t, "lead.create", template.Action.HandlerKey)

	_, ok = cat.Get("missing")
	assert.False(t, ok)

	customer := cat.ByCategory(models.CategoryCustomer)
	require.NotEmpty(t, customer)

	for _, template := range customer {
		assert.Equal(t, models.CategoryCustomer, template.Action.Category)
	}
}

func TestInstantiateStampsUniqueIDs(t *testing.T) {
	t.Parallel()

	cat := New()

	first, err := cat.Instantiate("create_lead", nil)
	require.NoError(t, err)

	second, err := cat.Instantiate("create_lead", nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.ID, "create_lead_"))
	assert.True(t, strings.HasPrefix(second.ID, "create_lead_"))
	assert.NotEqual(t, first.ID, second.ID)

	// Both instances keep dispatching through the stable handler key.
	assert.Equal(t, "lead.create", first.HandlerKey)
	assert.Equal(t, "lead.create", second.HandlerKey)
}

func TestInstantiateCopiesSlices(t *testing.T) {
	t.Parallel()

	cat := New()

	instance, err := cat.Instantiate("create_lead", nil)
	require.NoError(t, err)

	instance.Tags[0] = "mutated"
	instance.Parameters[0].Name = "mutated"

	template, ok := cat.Get("create_lead")
	require.True(t, ok)
	assert.Equal(t, "customer", template.Action.Tags[0])
	assert.Equal(t, "name", template.Action.Parameters[0].Name)
}

func TestInstantiateAppliesOverrides(t *testing.T) {
	t.Parallel()

	cat := New()

	instance, err := cat.Instantiate("create_task", func(a *models.Action) {
		a.Description = "Follow up with Kim Tan"
		a.Metadata = map[string]any{"source": "suggestion"}
	})
	require.NoError(t, err)

	assert.Equal(t, "Follow up with Kim Tan", instance.Description)
	assert.Equal(t, "suggestion", instance.Metadata["source"])
}

func TestInstantiateUnknownTemplate(t *testing.T) {
	t.Parallel()

	cat := New()

	_, err := cat.Instantiate("does_not_exist", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestInstantiatedActionValidatesThroughExecutor(t *testing.T) {
	t.Parallel()

	cat := New()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	exec := executor.NewExecutor(logger, executor.Options{})

	handlerCalls := 0
	exec.RegisterHandler("lead.create", func(context.Context, map[string]any, models.ActionContext) (*models.ActionResult, error) {
		handlerCalls++

		return &models.ActionResult{Success: true}, nil
	})

	instance, err := cat.Instantiate("create_lead", nil)
	require.NoError(t, err)

	actx := models.ActionContext{
		UserID:      "advisor-1",
		Session:     models.SessionInfo{SessionID: "session-1"},
		Permissions: []models.PermissionLevel{models.PermissionWrite},
	}

	// Name alone is not enough; the contact number is required too.
	result := exec.Execute(context.Background(), models.ActionRequest{
		Action:     instance,
		Parameters: map[string]any{"name": "Kim Tan"},
		Context:    actx,
	})
	assert.False(t, result.Success)
	assert.Equal(t, "Required parameter missing: contact_number", result.Error)
	assert.Zero(t, handlerCalls)

	result = exec.Execute(context.Background(), models.ActionRequest{
		Action: instance,
		Parameters: map[string]any{
			"name":           "Kim Tan",
			"contact_number": "91234567",
			"lead_source":    "Referral",
		},
		Context: actx,
	})
	assert.True(t, result.Success, result.Error)
	assert.Equal(t, 1, handlerCalls)
}
