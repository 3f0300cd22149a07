package hooks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formpost/pkg/core"
	"github.com/aretw0/formpost/pkg/hooks"
)

func TestTable_SavePriorityAndChain(t *testing.T) {
	table := hooks.NewTable()
	var order []string

	table.OnSave(20, func(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
		order = append(order, "late")
		return id, nil
	})
	table.OnSave(hooks.DefaultPriority, func(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
		order = append(order, "first")
		return id + 1, nil
	})
	table.OnSave(hooks.DefaultPriority, func(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
		order = append(order, "second")
		sub.Delete("gone")
		return id * 10, nil
	})

	s := core.NewSubmission(core.Field{Key: "gone", Value: "x"})
	id, err := table.Save(context.Background(), 1, s)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "late"}, order)
	assert.Equal(t, int64(20), id)
	assert.True(t, s.Empty())
}

func TestTable_SaveStopsOnError(t *testing.T) {
	table := hooks.NewTable()
	boom := errors.New("boom")
	called := false

	table.OnSave(1, func(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
		return 0, boom
	})
	table.OnSave(2, func(ctx context.Context, id int64, sub *core.Submission) (int64, error) {
		called = true
		return id, nil
	})

	id, err := table.Save(context.Background(), 5, &core.Submission{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(5), id)
	assert.False(t, called)
}

func TestTable_LoadValueByName(t *testing.T) {
	table := hooks.NewTable()
	table.OnLoadValue("form_post_title", hooks.DefaultPriority,
		func(ctx context.Context, value, ref string, field core.FieldDescriptor) (string, error) {
			return "title of " + ref, nil
		})

	got, err := table.LoadValue(context.Background(), "v", "7", core.FieldDescriptor{Name: "form_post_title"})
	require.NoError(t, err)
	assert.Equal(t, "title of 7", got)

	got, err = table.LoadValue(context.Background(), "v", "7", core.FieldDescriptor{Name: "other"})
	require.NoError(t, err)
	assert.Equal(t, "v", got, "no handler means passthrough")
}

func TestTable_InitCanRegister(t *testing.T) {
	table := hooks.NewTable()
	table.OnInit(hooks.DefaultPriority, func(ctx context.Context) error {
		table.OnLoadValue("x", hooks.DefaultPriority, func(ctx context.Context, value, ref string, field core.FieldDescriptor) (string, error) {
			return value, nil
		})
		return nil
	})

	require.NoError(t, table.Init(context.Background()))
	assert.Equal(t, 1, table.Len(hooks.Key{Kind: hooks.KindLoadValue, Name: "x"}))

	state := table.State().(hooks.TableState)
	assert.Equal(t, 1, state.Handlers["load_value/name=x"])
	assert.Equal(t, 1, state.Handlers["init"])
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "pre_save_post", hooks.Key{Kind: hooks.KindSave}.String())
	assert.Equal(t, "load_value/name=form_post_content",
		hooks.Key{Kind: hooks.KindLoadValue, Name: "form_post_content"}.String())
}
