package main

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vegasq/qsift/policy"
	"github.com/vegasq/qsift/reader"
)

// dataset is a loaded record set and the policy that guards it.
type dataset struct {
	records []map[string]any
	policy  *policy.Policy[map[string]any]
}

// loadDataset reads the records at path and resolves the entity policy. The
// entity defaults to the file's base name and starts from the properties
// inferred from its schema; configuration may replace or restrict them.
func loadDataset(opts *rootOptions, path, entityName string, overrides policy.Overrides) (*dataset, error) {
	schemaPath, err := firstMatch(path)
	if err != nil {
		return nil, err
	}
	if entityName == "" {
		entityName = entityNameFor(schemaPath)
	}

	infos, err := reader.ExtractSchemaInfo(schemaPath)
	if err != nil {
		return nil, err
	}

	inferred, skipped := reader.EntityFromSchema(entityName, infos)
	if len(skipped) > 0 {
		opts.log.Debugw("columns not exposed as properties", "entity", entityName, "columns", skipped)
	}
	if reader.IsPattern(path) {
		inferred.Property(reader.FileColumn, policy.KindString, policy.Field(reader.FileColumn)).Filterable().Sortable()
	}

	entity, err := opts.cfg.Entity(entityName, inferred)
	if err != nil {
		return nil, err
	}
	p, err := entity.Resolve(opts.cfg.Options(), overrides)
	if err != nil {
		return nil, err
	}

	records, err := reader.ReadMultipleFiles(path)
	if err != nil {
		return nil, err
	}

	opts.log.Debugw("loaded records",
		"path", path,
		"entity", p.Entity(),
		"records", len(records),
		"properties", p.Names(),
		"filtering", p.FilteringEnabled(),
		"sorting", p.SortingEnabled(),
		"paging", p.PagingEnabled())

	return &dataset{records: records, policy: p}, nil
}

// firstMatch resolves a glob to its first file; the schema is read from it.
func firstMatch(path string) (string, error) {
	if !reader.IsPattern(path) {
		return path, nil
	}
	matches, err := filepath.Glob(path)
	if err != nil {
		return "", errors.Wrap(err, "invalid glob pattern")
	}
	if len(matches) == 0 {
		return "", errors.Newf("no files match pattern: %s", path)
	}
	return matches[0], nil
}

// entityNameFor names an entity after its file, "data/people.parquet" being
// "people".
func entityNameFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
