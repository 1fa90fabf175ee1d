package policy

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	Name string
	Age  int
}

func TestResolve_Precedence(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name     string
		override Setting
		entity   *bool
		global   bool
		want     bool
	}{
		{"global only", Unset, nil, true, true},
		{"global off", Unset, nil, false, false},
		{"entity beats global", Unset, &no, true, false},
		{"entity on", Unset, &yes, false, true},
		{"override beats entity", Enabled, &no, false, true},
		{"override disables", Disabled, &yes, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.override, tt.entity, tt.global))
		})
	}
}

func TestSettingOf(t *testing.T) {
	assert.Equal(t, Enabled, SettingOf(true))
	assert.Equal(t, Disabled, SettingOf(false))
}

func TestEntity_Resolve(t *testing.T) {
	e := NewEntity[user]("users").
		CanFilter().
		CanSort(false).
		HasDefaultPageSize(5)
	e.Property("Name", KindString, func(u user) any { return u.Name }).Filterable().Sortable()
	e.Property("age", KindInt, func(u user) any { return u.Age }).Filterable()

	p, err := e.Resolve(Options{PagingEnabled: true, DefaultPageSize: 10, MaximumPageSize: 40}, Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "users", p.Entity())
	assert.True(t, p.FilteringEnabled())
	assert.False(t, p.SortingEnabled())
	assert.True(t, p.PagingEnabled())
	assert.Equal(t, 5, p.DefaultPageSize())
	assert.Equal(t, 40, p.MaximumPageSize())
	assert.Equal(t, []string{"Name", "age"}, p.Names())

	prop, ok := p.Property("name")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, KindString, prop.Kind)
	assert.True(t, prop.Filterable)
	assert.True(t, prop.Sortable)
	assert.Equal(t, "Ann", prop.Get(user{Name: "Ann"}))

	props := p.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "age", props[1].Name)
	assert.False(t, props[1].Sortable)

	_, ok = p.Property("missing")
	assert.False(t, ok)
}

func TestEntity_PropertyRedeclared(t *testing.T) {
	e := NewEntity[user]("users")
	e.Property("age", KindInt, func(u user) any { return u.Age }).Filterable()
	e.Property("AGE", KindInt, nil).Sortable()

	p, err := e.Resolve(DefaultOptions(), Overrides{})
	require.NoError(t, err)
	require.Len(t, p.Properties(), 1)

	prop, _ := p.Property("age")
	assert.True(t, prop.Filterable)
	assert.True(t, prop.Sortable)
}

func TestEntity_BuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() *Entity[user]
		wantErr error
	}{
		{"default page size", func() *Entity[user] { return NewEntity[user]("u").HasDefaultPageSize(0) }, ErrInvalidPageSize},
		{"max page size", func() *Entity[user] { return NewEntity[user]("u").HasMaxPageSize(-1) }, ErrInvalidPageSize},
		{"nested property", func() *Entity[user] {
			e := NewEntity[user]("u")
			e.Property("address.city", KindString, func(u user) any { return "" })
			return e
		}, ErrInvalidProperty},
		{"empty property", func() *Entity[user] {
			e := NewEntity[user]("u")
			e.Property(" ", KindString, func(u user) any { return "" })
			return e
		}, ErrInvalidProperty},
		{"no accessor", func() *Entity[user] {
			e := NewEntity[user]("u")
			e.Property("name", KindString, nil)
			return e
		}, ErrInvalidProperty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.build().Resolve(DefaultOptions(), Overrides{})
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v", err)
		})
	}
}

func TestEntity_OptionsWithoutPageSizes(t *testing.T) {
	_, err := NewEntity[user]("u").Resolve(Options{}, Overrides{})
	assert.True(t, errors.Is(err, ErrInvalidPageSize))
}

func TestEntity_Overrides(t *testing.T) {
	e := NewEntity[user]("u").CanFilter().CanSort().CanPage()
	p, err := e.Resolve(DefaultOptions(), Overrides{Filtering: Disabled, Paging: Disabled})
	require.NoError(t, err)
	assert.False(t, p.FilteringEnabled())
	assert.True(t, p.SortingEnabled())
	assert.False(t, p.PagingEnabled())
}

func TestField(t *testing.T) {
	get := Field("age")
	assert.Equal(t, 3, get(map[string]any{"age": 3}))
	assert.Nil(t, get(map[string]any{}))
}

func TestKind(t *testing.T) {
	tests := []struct {
		input     string
		want      Kind
		orderable bool
	}{
		{"string", KindString, true},
		{"Integer", KindInt, true},
		{"number", KindFloat, true},
		{"boolean", KindBool, false},
		{"timestamp", KindTime, true},
		{" uuid ", KindUUID, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.orderable, got.Orderable())

			again, err := ParseKind(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	_, err := ParseKind("complex128")
	assert.Error(t, err)
	assert.Equal(t, "kind(42)", Kind(42).String())
}
