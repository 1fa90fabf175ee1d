package query

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/qsift/policy"
)

func compileFilter(t *testing.T, p *policy.Policy[member], raw string) Predicate[member] {
	t.Helper()
	q, err := ParseFilter(raw)
	require.NoError(t, err)
	require.NoError(t, ValidateFilter(q, p))
	pred, err := CompileFilter(q, p)
	require.NoError(t, err)
	return pred
}

func TestCompileFilter_Match(t *testing.T) {
	p := membersPolicy(t)
	id := uuid.MustParse("3f1a4c9e-8f6b-4a55-9d36-0c3e2f1b7a10")
	joe := member{
		ID:       id,
		Name:     "Joe",
		City:     "Pawnee",
		Age:      25,
		Posts:    5,
		Score:    72.5,
		Active:   true,
		Birthday: date("1994-12-02"),
	}

	tests := []struct {
		filter string
		want   bool
	}{
		// fan-out is a disjunction
		{"age|posts>20", true},
		{"age|posts>30", false},
		{"name=Amy|Joe", true},
		{"name=Amy|Jane", false},

		{"name=Joe", true},
		{"name=joe", false},
		{"name!=Joe", false},
		{"age=25", true},
		{"age>=25", true},
		{"age>25", false},
		{"age<=25", true},
		{"age<26", true},
		{"posts<5", false},
		{"score>72.4", true},
		{"score=72.5", true},
		{"active=true", true},
		{"active!=true", false},
		{"birthday<1995-01-01", true},
		{"birthday=12/2/1994", true},
		{"birthday>1994-12-02T00:00:00Z", false},
		{"id=" + id.String(), true},
		{"id!=" + id.String(), false},

		// nodes are ANDed
		{"name=Joe,age>20", true},
		{"name=Joe,age>30", false},
		{"age>30,name=Joe", false},

		// != fans out as OR of the negated tests
		{"age|posts!=25", true},
		{"name!=Joe|Amy", true},

		// nil record values only satisfy !=
		{"nickname=Joey", false},
		{"nickname!=Joey", true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			pred := compileFilter(t, p, tt.filter)
			got, err := pred(joe)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileFilter_PointerValues(t *testing.T) {
	p := membersPolicy(t)
	pred := compileFilter(t, p, "nickname=Joey")

	ok, err := pred(member{Nickname: strPtr("Joey")})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileFilter_EmptyMatchesEverything(t *testing.T) {
	p := membersPolicy(t)
	pred, err := CompileFilter(FilterQuery{}, p)
	require.NoError(t, err)

	ok, err := pred(member{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompileFilter_LiteralConversion(t *testing.T) {
	p := membersPolicy(t)

	for _, raw := range []string{"age=twenty", "score>high", "active=maybe", "birthday<yesterday", "id=not-a-uuid"} {
		t.Run(raw, func(t *testing.T) {
			q, err := ParseFilter(raw)
			require.NoError(t, err)
			require.NoError(t, ValidateFilter(q, p))

			pred, err := CompileFilter(q, p)
			assert.Nil(t, pred)
			assert.True(t, errors.Is(err, ErrValueConversion), "error = %v", err)
		})
	}
}

func TestCompileFilter_RecordConversionDeferred(t *testing.T) {
	e := policy.NewEntity[map[string]any]("rows").CanFilter()
	e.Property("age", policy.KindInt, policy.Field("age")).Filterable()
	p, err := e.Resolve(policy.DefaultOptions(), policy.Overrides{})
	require.NoError(t, err)

	q, err := ParseFilter("age>20")
	require.NoError(t, err)
	require.NoError(t, ValidateFilter(q, p))

	// compiling never reads records
	pred, err := CompileFilter(q, p)
	require.NoError(t, err)

	ok, err := pred(map[string]any{"age": int32(30)})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = pred(map[string]any{"age": "thirty"})
	assert.True(t, errors.Is(err, ErrValueConversion))

	ok, err = pred(map[string]any{})
	require.NoError(t, err)
	assert.False(t, ok, "missing values never satisfy >")
}

func TestCompileFilter_ShortCircuitsNodes(t *testing.T) {
	calls := 0
	e := policy.NewEntity[member]("members")
	e.Property("age", policy.KindInt, func(m member) any { return m.Age }).Filterable()
	e.Property("name", policy.KindString, func(m member) any {
		calls++
		return m.Name
	}).Filterable()
	p, err := e.Resolve(policy.DefaultOptions(), policy.Overrides{})
	require.NoError(t, err)

	pred := compileFilter(t, p, "age>50,name=Joe")
	ok, err := pred(member{Name: "Joe", Age: 20})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, calls, "second node must not run once the first is false")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		kind  policy.Kind
		left  any
		op    Operator
		right any
		want  bool
	}{
		{"int equal", policy.KindInt, int64(30), Equals, int64(30), true},
		{"int not equal", policy.KindInt, int64(30), DoesNotEqual, int64(25), true},
		{"int less", policy.KindInt, int64(25), LessThan, int64(30), true},
		{"int greater wrong", policy.KindInt, int64(25), GreaterThan, int64(30), false},
		{"float less equal", policy.KindFloat, 2.5, LessThanOrEqual, 2.5, true},
		{"string case sensitive", policy.KindString, "Alice", Equals, "alice", false},
		{"string less", policy.KindString, "alice", LessThan, "bob", true},
		{"bool equal", policy.KindBool, true, Equals, true, true},
		{"bool not equal", policy.KindBool, false, DoesNotEqual, true, true},
		{"time greater", policy.KindTime, date("2024-02-01"), GreaterThan, date("2024-01-01"), true},
		{"nil equal", policy.KindString, nil, Equals, "x", false},
		{"nil not equal", policy.KindString, nil, DoesNotEqual, "x", true},
		{"nil ordering", policy.KindInt, nil, LessThan, int64(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compare(tt.kind, tt.left, tt.op, tt.right); got != tt.want {
				t.Errorf("compare(%v, %v, %v) = %v, want %v", tt.left, tt.op, tt.right, got, tt.want)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	id := uuid.MustParse("3f1a4c9e-8f6b-4a55-9d36-0c3e2f1b7a10")
	n := int16(7)

	tests := []struct {
		name    string
		kind    policy.Kind
		in      any
		want    any
		wantErr bool
	}{
		{"int from int32", policy.KindInt, int32(5), int64(5), false},
		{"int from uint8", policy.KindInt, uint8(5), int64(5), false},
		{"int from pointer", policy.KindInt, &n, int64(7), false},
		{"int from float", policy.KindInt, 1.5, nil, true},
		{"uint64 overflow", policy.KindInt, uint64(1 << 63), nil, true},
		{"float from int", policy.KindFloat, 3, 3.0, false},
		{"float from float32", policy.KindFloat, float32(0.5), 0.5, false},
		{"string from bytes", policy.KindString, []byte("hi"), "hi", false},
		{"string from int", policy.KindString, 5, nil, true},
		{"bool", policy.KindBool, true, true, false},
		{"time from string", policy.KindTime, "2024-01-01", date("2024-01-01"), false},
		{"time from garbage", policy.KindTime, "soon", nil, true},
		{"uuid from string", policy.KindUUID, id.String(), id, false},
		{"uuid from array", policy.KindUUID, [16]byte(id), id, false},
		{"nil", policy.KindInt, nil, nil, false},
		{"nil pointer", policy.KindString, (*string)(nil), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerce(tt.kind, tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrValueConversion), "error = %v", err)
				return
			}
			require.NoError(t, err)
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
