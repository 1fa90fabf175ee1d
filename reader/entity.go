package reader

import (
	"github.com/vegasq/qsift/policy"
)

// KindOf maps a column to the policy kind its values are read as. Columns
// without a comparable scalar representation report false.
func KindOf(info SchemaInfo) (policy.Kind, bool) {
	switch info.Type {
	case "STRING", "ENUM", "BYTE_ARRAY":
		return policy.KindString, true
	case "INT32", "INT64":
		return policy.KindInt, true
	case "FLOAT32", "FLOAT64":
		return policy.KindFloat, true
	case "BOOLEAN":
		return policy.KindBool, true
	case "UUID":
		return policy.KindUUID, true
	default:
		// DATE, TIME and TIMESTAMP are read back as raw integers whose unit
		// depends on the column, so they are not inferred.
		return 0, false
	}
}

// EntityFromSchema declares one filterable and sortable property per
// top-level scalar column. Nested, repeated and unsupported columns are left
// out and returned as skipped.
func EntityFromSchema(name string, infos []SchemaInfo) (*policy.Entity[map[string]any], []string) {
	entity := policy.NewEntity[map[string]any](name)

	var skipped []string
	for _, info := range infos {
		kind, ok := KindOf(info)
		if !ok || info.Nested() || info.Repeated {
			skipped = append(skipped, info.Name)
			continue
		}
		entity.Property(info.Name, kind, policy.Field(info.Name)).Filterable().Sortable()
	}
	return entity, skipped
}
