package query

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/qsift/policy"
)

// member is the record type used across the package tests
type member struct {
	ID       uuid.UUID
	Name     string
	City     string
	Age      int
	Posts    int32
	Score    float64
	Active   bool
	Birthday time.Time
	Nickname *string
	Secret   string
}

func membersEntity() *policy.Entity[member] {
	e := policy.NewEntity[member]("members").
		CanFilter().CanSort().CanPage().
		HasDefaultPageSize(10).
		HasMaxPageSize(50)

	e.Property("id", policy.KindUUID, func(m member) any { return m.ID }).Filterable().Sortable()
	e.Property("name", policy.KindString, func(m member) any { return m.Name }).Filterable().Sortable()
	e.Property("city", policy.KindString, func(m member) any { return m.City }).Filterable().Sortable()
	e.Property("age", policy.KindInt, func(m member) any { return m.Age }).Filterable().Sortable()
	e.Property("posts", policy.KindInt, func(m member) any { return m.Posts }).Filterable().Sortable()
	e.Property("score", policy.KindFloat, func(m member) any { return m.Score }).Filterable().Sortable()
	e.Property("active", policy.KindBool, func(m member) any { return m.Active }).Filterable().Sortable()
	e.Property("birthday", policy.KindTime, func(m member) any { return m.Birthday }).Filterable().Sortable()
	e.Property("nickname", policy.KindString, func(m member) any { return m.Nickname }).Filterable().Sortable()
	e.Property("secret", policy.KindString, func(m member) any { return m.Secret })
	return e
}

func membersPolicy(t *testing.T) *policy.Policy[member] {
	t.Helper()
	p, err := membersEntity().Resolve(policy.DefaultOptions(), policy.Overrides{})
	require.NoError(t, err)
	return p
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func names(members []member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}
	return out
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }
