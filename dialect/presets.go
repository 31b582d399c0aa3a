package dialect

import "sync"

// Base word lists shared by the preset dialects. Declared lower-case; the
// completion layer upper-cases on request.
const (
	// SQL92 + common extensions.
	sqlKeywords = "and as asc between by count create delete desc distinct drop from group having in insert into is join like limit not on or order select set table union update values where " +
		"add all alter analyze begin case cast check column commit constraint cross current_date current_time current_timestamp database default else end exists foreign full grant if index inner intersect key left natural no of offset outer primary references release rename replace right rollback savepoint then to transaction trigger unique using view when with"

	sqlTypes = "array binary bit boolean char character clob date decimal double float int integer interval large national nchar nclob numeric object precision real smallint time timestamp varchar varying"
)

var presets = map[string]func() *Dialect{
	"sql":        StandardSQL,
	"standard":   StandardSQL,
	"postgresql": PostgreSQL,
	"postgres":   PostgreSQL,
	"mysql":      MySQL,
	"mariadb":    MariaSQL,
	"mariasql":   MariaSQL,
	"mssql":      MSSQL,
	"sqlite":     SQLite,
	"cassandra":  Cassandra,
	"cql":        Cassandra,
	"plsql":      PLSQL,
}

// StandardSQL is the baseline descriptor: default character classes, no
// dialect extensions.
var StandardSQL = sync.OnceValue(func() *Dialect {
	return MustNew(Spec{
		Keywords: sqlKeywords,
		Types:    sqlTypes,
	})
})

// PostgreSQL enables dollar quoting, charset casts and the extended operator
// set; parameters are $1-style special variables.
var PostgreSQL = sync.OnceValue(func() *Dialect {
	return MustNew(Spec{
		Keywords: sqlKeywords + " " +
			"abort analyse array call cascade checkpoint cluster collate comment concurrently conflict copy current_catalog current_role current_schema current_user deallocate declare discard do escape event except execute explain fetch filter following for freeze function generated ilike import isnull lateral listen load lock materialized merge moved notify nowait nothing notnull nulls only over overlaps owned partition policy prepare published raise range reassign recursive refresh reindex restrict returning schema sequence session_user show similar some symmetric system tablespace truncate trusted unlisten until vacuum variadic verbose window",
		Types: sqlTypes + " " +
			"bigint int2 int4 int8 serial serial2 serial4 serial8 smallserial bigserial box bytea cidr circle inet json jsonb line lseg macaddr macaddr8 money path pg_lsn point polygon text timestamptz timetz tsquery tsvector txid_snapshot uuid xml",
		Builtins: "current_catalog current_role current_schema current_user session_user user",

		BackslashEscapes:          false,
		CharSetCasts:              true,
		DoubleDollarQuotedStrings: true,
		OperatorChars:             "+-*/<>=~!@#%^&|`?",
		SpecialVar:                "$",
	})
})

// mysqlSpec carries everything MySQL and MariaDB share.
func mysqlSpec() Spec {
	return Spec{
		Keywords: sqlKeywords + " " +
			"accessible action algorithm auto_increment binlog both call cascade cascaded change charset collate columns comment current_user databases deallocate definer delayed delimiter describe directory disable discard distinctrow enable enforced engine escape escaped events execute explain fields flush for force fulltext grants high_priority hosts identified ignore infile invoker kill leading load local lock locks low_priority master modify no_write_to_binlog optimize option optionally outfile partition prepare privileges procedure purge read rename require row_format schema schemas separator show slave snapshot soname status storage straight_join tables temporary terminated trailing truncate unlock usage use user_resources variables zerofill",
		Types: sqlTypes + " " +
			"bigint bool blob enum json longblob longtext mediumblob mediumint mediumtext tinyblob tinyint tinytext text unsigned year",
		Builtins: "charset clear current_user edit ego help nopager notee nowarning pager print prompt quit rehash source status system tee",

		BackslashEscapes:           true,
		HashComments:               true,
		SpaceAfterDashes:           true,
		CharSetCasts:               true,
		DoubleQuotedStrings:        true,
		UnquotedBitLiterals:        true,
		CaseInsensitiveIdentifiers: true,
		OperatorChars:              "*+-%<>!=&|^",
		SpecialVar:                 "@?",
		IdentifierQuotes:           "`",
	}
}

// MySQL uses hash comments, backslash escapes, backtick identifier quoting
// and 0b bit literals.
var MySQL = sync.OnceValue(func() *Dialect {
	return MustNew(mysqlSpec())
})

// MariaSQL is MySQL with bit literals relaxed to byte strings.
var MariaSQL = sync.OnceValue(func() *Dialect {
	spec := mysqlSpec()
	spec.TreatBitsAsBytes = true
	return MustNew(spec)
})

// MSSQL (Transact-SQL) adds @-variables and the T-SQL keyword surface.
var MSSQL = sync.OnceValue(func() *Dialect {
	return MustNew(Spec{
		Keywords: sqlKeywords + " " +
			"backup break browse bulk cascade checkpoint clustered compute containstable current_user dbcc deny disk distributed dump errlvl exec execute exit fetch file fillfactor for freetexttable goto holdlock identity_insert identitycol kill lineno load merge nocheck nonclustered off offsets opendatasource openquery openrowset openxml over percent pivot plan print proc procedure public raiserror read readtext reconfigure restore revert rowcount rowguidcol rule schema session_user setuser shutdown statistics textsize top tran truncate tsequal unpivot updatetext use waitfor while writetext",
		Types: sqlTypes + " " +
			"bigint datetime datetime2 datetimeoffset geography geometry hierarchyid image money nvarchar ntext rowversion smalldatetime smallmoney sql_variant text tinyint uniqueidentifier xml",
		Builtins: "coalesce current_timestamp current_user dense_rank getdate isnull lead lag newid nullif rank row_number session_user system_user user user_name",

		OperatorChars: "*+-%<>!=^&|/",
		SpecialVar:    "@",
	})
})

// SQLite accepts double- and backtick-quoted identifiers and four flavors of
// bound-parameter markers.
var SQLite = sync.OnceValue(func() *Dialect {
	return MustNew(Spec{
		Keywords: sqlKeywords + " " +
			"abort action attach autoincrement conflict deferrable deferred detach each exclusive explain fail glob ignore indexed initially instead isnull notnull of plan pragma query raise regexp reindex restrict temp temporary vacuum virtual without rowid strict",
		Types: sqlTypes + " " +
			"bigint blob int8 text tinyint",
		Builtins: "auth backup bail databases dbinfo dump echo eqp exit explain fullschema headers help import imposter indexes iotrace lint load log mode nullvalue once open output print prompt quit read restore save scanstats schema separator session shell show stats system tables testcase timeout timer trace vfsinfo vfslist vfsname width",

		CaseInsensitiveIdentifiers: true,
		OperatorChars:              "*+-%<>!=&|/~",
		SpecialVar:                 "@:?$",
		IdentifierQuotes:           "`\"",
	})
})

// Cassandra covers CQL: slash-slash comments, no special variables.
var Cassandra = sync.OnceValue(func() *Dialect {
	return MustNew(Spec{
		Keywords: "add all allow alter and any apply as asc authorize batch begin by clustering columnfamily compact consistency count create custom delete desc distinct drop each_quorum exists filtering from grant if in index insert into key keyspace keyspaces level limit local_one local_quorum materialized modify nan norecursive nosuperuser not of on one order partition password permission permissions primary quorum rename revoke schema select set storage superuser table three to token truncate ttl two type unlogged update use user users using values view where with writetime infinity",
		Types: "ascii bigint blob boolean counter date decimal double duration float frozen inet int list map set smallint static text time timestamp timeuuid tinyint tuple uuid varchar varint",

		SlashComments: true,
		SpecialVar:    NoSpecialVar,
		OperatorChars: "*+-%<>!=&|~^/",
	})
})

// PLSQL enables q'[...]'-style quoting and charset casts, and treats
// double-quoted text as strings the way SQL*Plus scripts expect.
var PLSQL = sync.OnceValue(func() *Dialect {
	return MustNew(Spec{
		Keywords: sqlKeywords + " " +
			"abort accept access allocate analyze assign audit authorization avg base_table begin body bulk case cluster colauth column comment commit compress connect connected constant cost current currval cursor databases dba declare deleting disposal do elsif enable entry escape exception exceptions execute exit external fetch form for found function goto grant identified immediate increment indexes indicator initial initrans level lock log logging loop maxextents minus mode modify new next nextval none number_base of off old only open option out package parallel pctfree pragma private procedure public raise range raw record ref release remr rename resource return returning reverse rollback row rowlabel rownum rows run savepoint schema separate session share snapshot some space split sql start statement storage subtype successful synonym tabauth tablespace task terminate then to trigger truncate type under unlimited use validate when whenever while",
		Builtins: "abs acos add_months ascii asin atan atan2 average bfilename ceil chartorowid chr concat convert cos cosh decode deref dual dump dup_val_on_index empty error exp false floor found glb greatest greatest_lb hextoraw initcap instr instrb isopen last_day least least_ub length lengthb ln lower lpad ltrim lub make_ref max min mod months_between new_time next_day nextval nls_charset_decl_len nls_charset_id nls_charset_name nls_initcap nls_lower nls_sort nls_upper nlssort no_data_found notfound null nvl others power rawtohex reftohex round rowcount rowidtochar rpad rtrim sign sin sinh soundex sqlcode sqlerrm sqrt stddev substr substrb sum sysdate tan tanh to_char to_date to_label to_multi_byte to_number to_single_byte translate true trunc uid upper user userenv variance vsize",
		Types: "char character date long number raw varchar varchar2 boolean binary_integer pls_integer blob clob nclob bfile rowid urowid",

		CharSetCasts:          true,
		DoubleQuotedStrings:   true,
		PLSQLQuotingMechanism: true,
		OperatorChars:         "*/+-%<>!=~",
	})
})
