package db

const (
	// Reports the server version, e.g. `14.5 (Debian 14.5-1.pgdg110+1)`
	showServerVersionSQL = `SHOW server_version`

	// Lists the relations of a schema along with their comments
	selectTablesSQL = `
		SELECT
			t.table_name,
			t.table_type,
			obj_description(c.oid, 'pg_class') AS comment
		FROM information_schema.tables t
			JOIN pg_catalog.pg_namespace n
				ON n.nspname = t.table_schema
			JOIN pg_catalog.pg_class c
				ON c.relnamespace = n.oid
				AND c.relname = t.table_name
		WHERE t.table_schema = $1
		ORDER BY t.table_name`

	// Lists the columns of every relation in a schema
	selectColumnsSQL = `
		SELECT
			table_name,
			column_name,
			ordinal_position,
			data_type,
			udt_name,
			character_maximum_length,
			numeric_precision,
			numeric_scale,
			is_nullable,
			column_default,
			is_identity,
			identity_generation,
			is_generated,
			generation_expression
		FROM information_schema.columns
		WHERE table_schema = $1
		ORDER BY table_name, ordinal_position`

	// Lists index definitions
	selectIndexesSQL = `
		SELECT
			tablename AS table_name,
			indexname AS index_name,
			indexdef AS definition
		FROM pg_catalog.pg_indexes
		WHERE schemaname = $1
		ORDER BY tablename, indexname`

	// Lists foreign keys, one row per constraint. Composite keys have their
	// columns joined in key order.
	selectForeignKeysSQL = `
		SELECT
			cl.relname AS table_name,
			con.conname AS constraint_name,
			string_agg(att.attname, ', ' ORDER BY k.ord) AS column_name,
			ref.relname AS referenced_table,
			string_agg(ratt.attname, ', ' ORDER BY k.ord) AS referenced_column
		FROM pg_catalog.pg_constraint con
			JOIN pg_catalog.pg_class cl
				ON cl.oid = con.conrelid
			JOIN pg_catalog.pg_namespace n
				ON n.oid = cl.relnamespace
			JOIN pg_catalog.pg_class ref
				ON ref.oid = con.confrelid
			CROSS JOIN LATERAL unnest(con.conkey, con.confkey)
				WITH ORDINALITY AS k(attnum, refattnum, ord)
			JOIN pg_catalog.pg_attribute att
				ON att.attrelid = con.conrelid
				AND att.attnum = k.attnum
			JOIN pg_catalog.pg_attribute ratt
				ON ratt.attrelid = con.confrelid
				AND ratt.attnum = k.refattnum
		WHERE con.contype = 'f'
		AND n.nspname = $1
		GROUP BY cl.relname, con.conname, ref.relname
		ORDER BY cl.relname, con.conname`

	// Lists enum members in declaration order
	selectEnumsSQL = `
		SELECT
			t.typname AS type_name,
			e.enumlabel AS value,
			row_number() OVER (PARTITION BY t.typname ORDER BY e.enumsortorder)::int AS sort_order
		FROM pg_catalog.pg_type t
			JOIN pg_catalog.pg_enum e
				ON e.enumtypid = t.oid
			JOIN pg_catalog.pg_namespace n
				ON n.oid = t.typnamespace
		WHERE n.nspname = $1
		ORDER BY t.typname, e.enumsortorder`

	// Lists row level security policies
	selectPoliciesSQL = `
		SELECT
			tablename AS table_name,
			policyname AS policy_name,
			permissive = 'PERMISSIVE' AS permissive,
			roles::text[] AS roles,
			cmd AS command,
			qual AS qualifier,
			with_check
		FROM pg_catalog.pg_policies
		WHERE schemaname = $1
		ORDER BY tablename, policyname`

	// Lists routines, skipping the ones installed by extensions
	selectFunctionsSQL = `
		SELECT
			p.proname AS name,
			pg_catalog.pg_get_function_identity_arguments(p.oid) AS arguments,
			COALESCE(pg_catalog.pg_get_function_result(p.oid), '') AS return_type,
			p.prokind::text AS kind,
			p.prosecdef AS security_definer,
			l.lanname AS language
		FROM pg_catalog.pg_proc p
			JOIN pg_catalog.pg_namespace n
				ON n.oid = p.pronamespace
			JOIN pg_catalog.pg_language l
				ON l.oid = p.prolang
		WHERE n.nspname = $1
		AND NOT EXISTS (
			SELECT 1 FROM pg_catalog.pg_depend d
			WHERE d.classid = 'pg_catalog.pg_proc'::regclass
			AND d.objid = p.oid
			AND d.deptype = 'e'
		)
		ORDER BY p.proname, arguments`

	// Lists triggers, one row per firing event
	selectTriggersSQL = `
		SELECT
			trigger_name,
			event_object_table AS table_name,
			event_manipulation AS event,
			action_statement AS statement,
			action_timing AS timing,
			action_orientation AS orientation
		FROM information_schema.triggers
		WHERE trigger_schema = $1
		ORDER BY event_object_table, trigger_name, event_manipulation`
)
