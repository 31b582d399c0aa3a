// Command langsql exercises the lang-sql library from the terminal: dump
// token streams, resolve completions at a cursor offset, and introspect live
// databases into namespace files.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sourcetable/lang-sql/complete"
	"github.com/sourcetable/lang-sql/dialect"
	"github.com/sourcetable/lang-sql/internal/tui"
	"github.com/sourcetable/lang-sql/introspect"
	"github.com/sourcetable/lang-sql/lexer"

	// Register database/sql drivers for the introspect command. The DuckDB
	// driver needs cgo and lives behind the duckdb build tag.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "langsql",
		Short:         "Dialect-aware SQL tokenizer and completion engine",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(tokensCmd(), completeCmd(), dialectsCmd(), editCmd(), introspectCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// namedDialect resolves a --dialect flag value.
func namedDialect(name string) (*dialect.Dialect, error) {
	d, ok := dialect.Named(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (try: %v)", name, dialect.Names())
	}
	return d, nil
}

// readInput returns the contents of the file argument, or stdin for "-" or
// no argument.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func tokensCmd() *cobra.Command {
	var (
		dialectFlag string
		colorFlag   bool
	)
	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Tokenize SQL and dump the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := namedDialect(dialectFlag)
			if err != nil {
				return err
			}
			src, err := readInput(args)
			if err != nil {
				return err
			}
			if colorFlag {
				fmt.Fprintln(cmd.OutOrStdout(), tui.Highlight(src, d))
				return nil
			}
			for _, tok := range lexer.Tokenize(src, d) {
				if tok.Kind == lexer.Whitespace {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%4d..%-4d %-17s %q\n", tok.Start, tok.End, tok.Kind, tok.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dialectFlag, "dialect", "d", "sql", "dialect preset name")
	cmd.Flags().BoolVar(&colorFlag, "color", false, "render highlighted source instead of the token table")
	return cmd
}

func completeCmd() *cobra.Command {
	var (
		dialectFlag   string
		schemaFlag    string
		posFlag       int
		defaultTable  string
		defaultSchema string
		upperFlag     bool
	)
	cmd := &cobra.Command{
		Use:   "complete [file|-]",
		Short: "List completion candidates at a cursor offset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(dialectFlag, schemaFlag, defaultTable, defaultSchema, upperFlag)
			if err != nil {
				return err
			}
			src, err := readInput(args)
			if err != nil {
				return err
			}
			if posFlag < 0 || posFlag > len(src) {
				posFlag = len(src)
			}
			for _, c := range complete.Complete(src, posFlag, cfg) {
				line := fmt.Sprintf("%-30s %s", c.Label, c.Type)
				if c.Detail != "" {
					line += "  " + c.Detail
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dialectFlag, "dialect", "d", "sql", "dialect preset name")
	cmd.Flags().StringVar(&schemaFlag, "schema", "", "namespace YAML file")
	cmd.Flags().IntVar(&posFlag, "pos", -1, "cursor byte offset (default: end of input)")
	cmd.Flags().StringVar(&defaultTable, "default-table", "", "surface this table's columns unqualified")
	cmd.Flags().StringVar(&defaultSchema, "default-schema", "", "resolve unqualified tables against this schema")
	cmd.Flags().BoolVar(&upperFlag, "upper", false, "upper-case keyword candidates")
	return cmd
}

func buildConfig(dialectName, schemaFile, defaultTable, defaultSchema string, upper bool) (complete.Config, error) {
	d, err := namedDialect(dialectName)
	if err != nil {
		return complete.Config{}, err
	}
	cfg := complete.Config{
		Dialect:           d,
		DefaultTable:      defaultTable,
		DefaultSchema:     defaultSchema,
		UpperCaseKeywords: upper,
	}
	if schemaFile != "" {
		data, err := os.ReadFile(schemaFile)
		if err != nil {
			return complete.Config{}, err
		}
		ns, err := complete.ParseNamespaceYAML(data)
		if err != nil {
			return complete.Config{}, err
		}
		cfg.Schema = ns
	}
	return cfg, nil
}

func dialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the preset dialect names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dialect.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var (
		dialectFlag   string
		schemaFlag    string
		defaultTable  string
		defaultSchema string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Interactive completion demo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(dialectFlag, schemaFlag, defaultTable, defaultSchema, true)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(tui.New(cfg)).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&dialectFlag, "dialect", "d", "sql", "dialect preset name")
	cmd.Flags().StringVar(&schemaFlag, "schema", "", "namespace YAML file")
	cmd.Flags().StringVar(&defaultTable, "default-table", "", "surface this table's columns unqualified")
	cmd.Flags().StringVar(&defaultSchema, "default-schema", "", "resolve unqualified tables against this schema")
	return cmd
}

// flavorDrivers maps an introspect flavor to its database/sql driver name.
// DuckDB registers itself from duckdb_enabled.go under -tags duckdb.
var flavorDrivers = map[introspect.Flavor]string{
	introspect.Postgres: "pgx",
	introspect.MySQL:    "mysql",
	introspect.SQLite:   "sqlite",
}

// flavorUnavailable holds flavors recognized but not compiled into this
// binary, mapped to the error explaining how to get them.
var flavorUnavailable = map[introspect.Flavor]error{}

func introspectCmd() *cobra.Command {
	var (
		flavorFlag  string
		timeoutFlag time.Duration
	)
	cmd := &cobra.Command{
		Use:   "introspect <dsn>",
		Short: "Build a namespace YAML from a live database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flavor := introspect.Flavor(flavorFlag)
			driver, ok := flavorDrivers[flavor]
			if !ok {
				if err := flavorUnavailable[flavor]; err != nil {
					return err
				}
				return fmt.Errorf("unknown flavor %q (postgres, mysql, sqlite, duckdb)", flavorFlag)
			}

			db, err := sql.Open(driver, args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", flavor, err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
			defer cancel()

			ns, err := introspect.Build(ctx, db, flavor)
			if err != nil {
				return err
			}
			out, err := complete.NamespaceYAML(ns)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&flavorFlag, "flavor", "f", "postgres", "database flavor")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "introspection timeout")
	return cmd
}
