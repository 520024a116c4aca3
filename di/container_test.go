package di

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/relay/errors"
)

type widget struct {
	ID int
}

func TestContainer_RegisterSingleton(t *testing.T) {
	c := New()
	instance := &widget{ID: 1}

	c.RegisterSingleton("widget", instance)

	got, err := c.Get("widget")
	require.NoError(t, err)
	assert.Same(t, instance, got)
}

func TestContainer_SingletonOverwrite(t *testing.T) {
	c := New()
	first := &widget{ID: 1}
	second := &widget{ID: 2}

	c.RegisterSingleton("widget", first)
	c.RegisterSingleton("widget", second)

	got, err := c.Get("widget")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestContainer_FactoryResolvesOnce(t *testing.T) {
	c := New()
	calls := 0

	c.RegisterFactory("widget", func(Container) (any, error) {
		calls++
		return &widget{ID: calls}, nil
	})

	first, err := c.Get("widget")
	require.NoError(t, err)
	second, err := c.Get("widget")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestContainer_FactoryErrorPropagates(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	calls := 0

	c.RegisterFactory("widget", func(Container) (any, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return &widget{}, nil
	})

	_, err := c.Get("widget")
	assert.Equal(t, boom, err)

	// A failed construction is not cached
	got, err := c.Get("widget")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, 2, calls)
}

func TestContainer_FactoryMayResolveDependencies(t *testing.T) {
	c := New()
	c.RegisterSingleton("id", 7)
	c.RegisterFactory("widget", func(c Container) (any, error) {
		id, err := c.Get("id")
		if err != nil {
			return nil, err
		}
		return &widget{ID: id.(int)}, nil
	})

	got, err := c.Get("widget")
	require.NoError(t, err)
	assert.Equal(t, 7, got.(*widget).ID)
}

func TestContainer_RegisterType(t *testing.T) {
	c := New()
	c.RegisterType("widget", reflect.TypeOf(widget{}))

	first, err := c.Get("widget")
	require.NoError(t, err)
	require.IsType(t, &widget{}, first)

	second, err := c.Get("widget")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestContainer_RegisterOverload(t *testing.T) {
	c := New()

	require.NoError(t, c.Register("name", "value"))
	got, err := c.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	// Type key with instance: singleton under lowercased type name
	instance := &widget{ID: 3}
	require.NoError(t, c.Register(reflect.TypeOf(instance), instance))
	got, err = c.Get("widget")
	require.NoError(t, err)
	assert.Same(t, instance, got)

	// Type key without instance: lazy type binding
	require.NoError(t, c.Register(reflect.TypeOf(widget{}), nil))

	// Any other key kind fails
	err = c.Register(42, "x")
	assert.True(t, errors.Is(err, errors.ErrInvalidKey(42)))
}

func TestContainer_GetUnknown(t *testing.T) {
	c := New()

	_, err := c.Get("missing")
	assert.True(t, errors.Is(err, errors.ErrServiceNotFound("missing")))
}

func TestContainer_Has(t *testing.T) {
	c := New()
	c.RegisterFactory("lazy", func(Container) (any, error) { return 1, nil })

	assert.True(t, c.Has("lazy"))
	assert.False(t, c.Has("Lazy")) // keys are case-sensitive
	assert.False(t, c.Has("missing"))
}

func TestContainer_Keys(t *testing.T) {
	c := New()
	c.RegisterSingleton("a", 1)
	c.RegisterSingleton("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
}

func TestContainer_ConcurrentResolutionIsAtMostOnce(t *testing.T) {
	c := New()
	var calls int
	var callMu sync.Mutex

	c.RegisterFactory("widget", func(Container) (any, error) {
		callMu.Lock()
		calls++
		callMu.Unlock()
		return &widget{}, nil
	})

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := c.Get("widget")
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}
