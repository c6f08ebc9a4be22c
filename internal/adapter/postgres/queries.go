package postgres

// queryListTables has one %s placeholder for the schema filter clause.
// reltuples is -1 before the first ANALYZE; that maps to an unknown row
// count, not zero.
const queryListTables = `
	SELECT
		t.table_schema,
		t.table_name,
		CASE WHEN c.reltuples IS NULL OR c.reltuples < 0 THEN NULL
			 ELSE c.reltuples::bigint
		END AS row_count
	FROM information_schema.tables t
	LEFT JOIN pg_catalog.pg_class c
		ON c.relname = t.table_name
		AND c.relnamespace = (
			SELECT n.oid FROM pg_catalog.pg_namespace n
			WHERE n.nspname = t.table_schema
		)
	WHERE %s
		AND t.table_type = 'BASE TABLE'
	ORDER BY t.table_schema, t.table_name`
