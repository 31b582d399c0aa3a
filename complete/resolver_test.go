package complete

import (
	"reflect"
	"sort"
	"testing"

	"github.com/sourcetable/lang-sql/dialect"
)

// labels extracts candidate labels, sorted for order-insensitive comparison.
func labels(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Label
	}
	sort.Strings(out)
	return out
}

func findLabel(cands []Candidate, label string) (Candidate, bool) {
	for _, c := range cands {
		if c.Label == label {
			return c, true
		}
	}
	return Candidate{}, false
}

func twoLevelSchema() *Namespace {
	return Children(map[string]*Namespace{
		"public": Children(map[string]*Namespace{
			"users":  Columns("id", "email"),
			"orders": Columns("id", "user_id", "total"),
		}),
		"analytics": Children(map[string]*Namespace{
			"events": Columns("ts", "kind"),
		}),
	})
}

func TestResolveEmptyPathWithDefaultTable(t *testing.T) {
	cfg := Config{
		Schema:       Children(map[string]*Namespace{"users": Columns("id", "name")}),
		DefaultTable: "users",
	}
	got := ResolveSchema(cfg, nil)

	want := []string{"id", "name", "users"}
	if !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("labels = %v, want %v", labels(got), want)
	}
	if c, _ := findLabel(got, "users"); c.Type != "table" {
		t.Errorf("users tagged %q, want table", c.Type)
	}
	if c, _ := findLabel(got, "id"); c.Type != "column" {
		t.Errorf("id tagged %q, want column", c.Type)
	}
}

func TestResolveQualifiedPath(t *testing.T) {
	cfg := Config{Schema: twoLevelSchema()}

	got := ResolveSchema(cfg, []string{"public", "users"})
	if want := []string{"email", "id"}; !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("labels = %v, want %v", labels(got), want)
	}
	for _, c := range got {
		if c.Type != "column" {
			t.Errorf("%s tagged %q, want column", c.Label, c.Type)
		}
	}

	// Unknown names and over-deep paths miss silently.
	if got := ResolveSchema(cfg, []string{"public", "missing"}); got != nil {
		t.Errorf("unknown table returned %v", got)
	}
	if got := ResolveSchema(cfg, []string{"nope"}); got != nil {
		t.Errorf("unknown schema returned %v", got)
	}
	if got := ResolveSchema(cfg, []string{"public", "users", "id"}); got != nil {
		t.Errorf("descending past a column list returned %v", got)
	}
}

func TestResolveTopLevelTypes(t *testing.T) {
	got := ResolveSchema(Config{Schema: twoLevelSchema()}, nil)
	for _, label := range []string{"public", "analytics"} {
		c, ok := findLabel(got, label)
		if !ok || c.Type != "schema" {
			t.Errorf("%s = %+v, want a schema candidate", label, c)
		}
	}
}

func TestResolveSelfOverride(t *testing.T) {
	ns := Children(map[string]*Namespace{
		"orders": SelfChildren(
			Candidate{Label: "orders", Type: "table", Detail: "partitioned"},
			map[string]*Namespace{"p2026": Columns("id")},
		),
	})
	got := ResolveSchema(Config{Schema: ns}, nil)
	c, ok := findLabel(got, "orders")
	if !ok || c.Detail != "partitioned" {
		t.Fatalf("self override not applied: %+v", got)
	}

	// The self node still resolves into its children.
	inner := ResolveSchema(Config{Schema: ns}, []string{"orders"})
	if want := []string{"p2026"}; !reflect.DeepEqual(labels(inner), want) {
		t.Fatalf("inner labels = %v, want %v", labels(inner), want)
	}
}

func TestResolveCaseFolding(t *testing.T) {
	schema := twoLevelSchema()

	insensitive := Config{Schema: schema, Dialect: dialect.MySQL()}
	if got := ResolveSchema(insensitive, []string{"PUBLIC", "USERS"}); len(got) != 2 {
		t.Errorf("case-insensitive lookup returned %v", got)
	}

	sensitive := Config{Schema: schema, Dialect: dialect.StandardSQL()}
	if got := ResolveSchema(sensitive, []string{"PUBLIC", "USERS"}); got != nil {
		t.Errorf("case-sensitive lookup returned %v", got)
	}
}

func TestResolveDefaultSchema(t *testing.T) {
	cfg := Config{Schema: twoLevelSchema(), DefaultSchema: "public"}

	// Top level now also lists public's tables.
	top := ResolveSchema(cfg, nil)
	if _, ok := findLabel(top, "users"); !ok {
		t.Errorf("default schema tables missing from top level: %v", labels(top))
	}

	// Unqualified table paths resolve through the default schema.
	got := ResolveSchema(cfg, []string{"users"})
	if want := []string{"email", "id"}; !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("labels = %v, want %v", labels(got), want)
	}
}

func TestResolveDefaultTableUnderDefaultSchema(t *testing.T) {
	cfg := Config{
		Schema:        twoLevelSchema(),
		DefaultSchema: "public",
		DefaultTable:  "users",
	}
	got := ResolveSchema(cfg, nil)
	for _, label := range []string{"email", "id", "users", "public"} {
		if _, ok := findLabel(got, label); !ok {
			t.Errorf("missing %q in %v", label, labels(got))
		}
	}
}

func TestResolveDeprecatedFlatLists(t *testing.T) {
	cfg := Config{
		Tables:  []Candidate{{Label: "users"}, {Label: "orders", Type: "view"}},
		Schemas: []Candidate{{Label: "public"}},
	}
	got := ResolveSchema(cfg, nil)
	if want := []string{"orders", "public", "users"}; !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("labels = %v, want %v", labels(got), want)
	}
	if c, _ := findLabel(got, "users"); c.Type != "table" {
		t.Errorf("users tagged %q, want table default", c.Type)
	}
	if c, _ := findLabel(got, "orders"); c.Type != "view" {
		t.Errorf("orders tagged %q, want declared view", c.Type)
	}

	// The flat lists never resolve qualified paths.
	if got := ResolveSchema(cfg, []string{"users"}); got != nil {
		t.Errorf("flat list resolved a path: %v", got)
	}

	// Schema wins when both are present.
	cfg.Schema = Children(map[string]*Namespace{"accounts": Columns("id")})
	got = ResolveSchema(cfg, nil)
	if want := []string{"accounts"}; !reflect.DeepEqual(labels(got), want) {
		t.Fatalf("schema not authoritative: %v", labels(got))
	}
}

func TestResolveDeduplicates(t *testing.T) {
	// users appears both as a top-level table and via defaultSchema.
	ns := Children(map[string]*Namespace{
		"users": Columns("id"),
		"public": Children(map[string]*Namespace{
			"users": Columns("id"),
		}),
	})
	got := ResolveSchema(Config{Schema: ns, DefaultSchema: "public"}, nil)
	var count int
	for _, c := range got {
		if c.Label == "users" && c.Type == "table" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("users appears %d times, want 1 (%v)", count, got)
	}
}
