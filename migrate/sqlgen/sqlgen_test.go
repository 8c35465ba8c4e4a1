package sqlgen

import (
	"strings"
	"testing"

	"github.com/satishbabariya/migrate-go/schema"
)

func renderFor(t *testing.T, driver string, def func(tbl *schema.Table)) string {
	t.Helper()
	tbl := schema.NewTable("users")
	def(tbl)
	sql, err := CreateTable(driver, tbl.Definition())
	if err != nil {
		t.Fatalf("CreateTable(%s) failed: %v", driver, err)
	}
	return sql
}

func TestIDColumnDivergesPerDialect(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.ID() }

	cases := []struct {
		driver string
		want   string
	}{
		{DriverSQLite, `"id" TEXT PRIMARY KEY`},
		{DriverMariaDB, "`id` INT PRIMARY KEY AUTO_INCREMENT"},
		{DriverPostgres, `"id" UUID PRIMARY KEY`},
	}
	for _, c := range cases {
		sql := renderFor(t, c.driver, def)
		if !strings.Contains(sql, c.want) {
			t.Errorf("%s: expected %q in:\n%s", c.driver, c.want, sql)
		}
	}
}

func TestIdentifierQuoting(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.String("name") }

	sql := renderFor(t, DriverMariaDB, def)
	if !strings.Contains(sql, "CREATE TABLE `users`") || !strings.Contains(sql, "`name` VARCHAR(255)") {
		t.Errorf("mariadb should backtick-quote identifiers:\n%s", sql)
	}

	for _, driver := range []string{DriverSQLite, DriverPostgres} {
		sql := renderFor(t, driver, def)
		if !strings.Contains(sql, `CREATE TABLE "users"`) || !strings.Contains(sql, `"name"`) {
			t.Errorf("%s should double-quote identifiers:\n%s", driver, sql)
		}
		if strings.Contains(sql, "`") {
			t.Errorf("%s must not emit backticks:\n%s", driver, sql)
		}
	}
}

func TestNamedUniqueBecomesTableConstraint(t *testing.T) {
	def := func(tbl *schema.Table) {
		tbl.String("email").Unique("users_email_unique")
	}

	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		sql := renderFor(t, driver, def)
		if !strings.Contains(sql, "users_email_unique") {
			t.Errorf("%s: named constraint missing:\n%s", driver, sql)
		}
		if !strings.Contains(sql, "CONSTRAINT") {
			t.Errorf("%s: expected a table-level CONSTRAINT clause:\n%s", driver, sql)
		}
		// The column line itself must not carry an inline UNIQUE once the
		// constraint is promoted.
		for _, line := range strings.Split(sql, "\n") {
			if strings.Contains(line, "email") && !strings.Contains(line, "CONSTRAINT") &&
				strings.Contains(line, "UNIQUE") {
				t.Errorf("%s: inline UNIQUE left on named-unique column: %s", driver, line)
			}
		}
	}
}

func TestUnnamedUniqueStaysInline(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.String("email").Unique() }

	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		sql := renderFor(t, driver, def)
		if strings.Contains(sql, "CONSTRAINT") {
			t.Errorf("%s: unnamed unique should stay inline:\n%s", driver, sql)
		}
		if !strings.Contains(sql, "UNIQUE") {
			t.Errorf("%s: inline UNIQUE missing:\n%s", driver, sql)
		}
	}
}

func TestIndexPlacementPerDialect(t *testing.T) {
	def := func(tbl *schema.Table) {
		tbl.String("email").Index()
	}

	// mariadb inlines the index in the table body.
	sql := renderFor(t, DriverMariaDB, def)
	if len(SplitStatements(sql)) != 1 {
		t.Errorf("mariadb should emit a single statement:\n%s", sql)
	}
	if !strings.Contains(sql, "INDEX `users_email_index` (`email`)") {
		t.Errorf("mariadb inline index missing:\n%s", sql)
	}

	// sqlite and postgres emit a separate CREATE INDEX.
	for _, driver := range []string{DriverSQLite, DriverPostgres} {
		sql := renderFor(t, driver, def)
		stmts := SplitStatements(sql)
		if len(stmts) != 2 {
			t.Fatalf("%s: expected 2 statements, got %d:\n%s", driver, len(stmts), sql)
		}
		if !strings.HasPrefix(stmts[1], "CREATE INDEX") {
			t.Errorf("%s: expected separate CREATE INDEX, got: %s", driver, stmts[1])
		}
		if !strings.Contains(stmts[1], "users_email_index") {
			t.Errorf("%s: derived index name missing: %s", driver, stmts[1])
		}
	}
}

func TestForeignKeyPlacementPerDialect(t *testing.T) {
	def := func(tbl *schema.Table) {
		tbl.ForeignID("team_id").References("teams", "id", "CASCADE")
	}

	// mariadb inlines the constraint.
	sql := renderFor(t, DriverMariaDB, def)
	if !strings.Contains(sql, "CONSTRAINT `fk_users_team_id` FOREIGN KEY (`team_id`) REFERENCES `teams` (`id`) ON DELETE CASCADE") {
		t.Errorf("mariadb inline foreign key missing:\n%s", sql)
	}

	// postgres adds it with a separate ALTER TABLE.
	sql = renderFor(t, DriverPostgres, def)
	stmts := SplitStatements(sql)
	last := stmts[len(stmts)-1]
	if !strings.HasPrefix(last, `ALTER TABLE "users" ADD CONSTRAINT "fk_users_team_id"`) {
		t.Errorf("postgres should add the foreign key via ALTER TABLE, got: %s", last)
	}
	if !strings.Contains(last, "ON DELETE CASCADE") {
		t.Errorf("postgres foreign key action missing: %s", last)
	}

	// sqlite renders no foreign-key clause at all.
	sql = renderFor(t, DriverSQLite, def)
	if strings.Contains(sql, "FOREIGN KEY") || strings.Contains(sql, "REFERENCES") {
		t.Errorf("sqlite must not render foreign keys:\n%s", sql)
	}
}

func TestMorphsExpandToTypeIDPair(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.Morphs("target") }

	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		sql := renderFor(t, driver, def)
		for _, col := range []string{"target_type", "target_id"} {
			if !strings.Contains(sql, col) {
				t.Errorf("%s: expected expanded column %q:\n%s", driver, col, sql)
			}
		}
		if !strings.Contains(sql, "users_target_type_target_id_index") {
			t.Errorf("%s: composite morph index missing:\n%s", driver, sql)
		}
		if !strings.Contains(sql, "NOT NULL") {
			t.Errorf("%s: morph pair should be NOT NULL:\n%s", driver, sql)
		}
	}
}

func TestNullableMorphs(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.NullableMorphs("target") }
	sql := renderFor(t, DriverPostgres, def)
	if strings.Contains(sql, "NOT NULL") {
		t.Errorf("nullableMorphs columns should not be NOT NULL:\n%s", sql)
	}
}

func TestUUIDMorphsUseUUIDIDColumn(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.UUIDMorphs("target") }
	sql := renderFor(t, DriverPostgres, def)
	if !strings.Contains(sql, `"target_id" UUID`) {
		t.Errorf("uuidMorphs id column should be UUID on postgres:\n%s", sql)
	}
}

func TestTimestampsExpandToPair(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.Timestamps() }
	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		sql := renderFor(t, driver, def)
		if !strings.Contains(sql, "created_at") || !strings.Contains(sql, "updated_at") {
			t.Errorf("%s: timestamps pair missing:\n%s", driver, sql)
		}
	}
}

func TestEnumRendering(t *testing.T) {
	def := func(tbl *schema.Table) {
		tbl.Enum("state", []string{"draft", "live"})
	}

	sql := renderFor(t, DriverMariaDB, def)
	if !strings.Contains(sql, "ENUM('draft', 'live')") {
		t.Errorf("mariadb should use native ENUM:\n%s", sql)
	}

	sql = renderFor(t, DriverSQLite, def)
	if !strings.Contains(sql, `CHECK ("state" IN ('draft', 'live'))`) {
		t.Errorf("sqlite should emulate enum with CHECK:\n%s", sql)
	}

	sql = renderFor(t, DriverPostgres, def)
	if !strings.Contains(sql, "VARCHAR(255)") || !strings.Contains(sql, `CHECK ("state" IN ('draft', 'live'))`) {
		t.Errorf("postgres should emulate enum with VARCHAR + CHECK:\n%s", sql)
	}
}

func TestActiveFlagChecksPerDialect(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.Active() }

	sql := renderFor(t, DriverSQLite, def)
	if !strings.Contains(sql, `CHECK (length("active") = 1 AND "active" IN ('0', '1'))`) {
		t.Errorf("sqlite active check missing:\n%s", sql)
	}
	if !strings.Contains(sql, "DEFAULT '1'") {
		t.Errorf("active should default to '1':\n%s", sql)
	}

	sql = renderFor(t, DriverMariaDB, def)
	if !strings.Contains(sql, "CHECK (`active` REGEXP '^[01]$')") {
		t.Errorf("mariadb active check missing:\n%s", sql)
	}

	sql = renderFor(t, DriverPostgres, def)
	if !strings.Contains(sql, `CHECK ("active" ~ '^[01]$')`) {
		t.Errorf("postgres active check missing:\n%s", sql)
	}
}

func TestVersionDefaultsToOne(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.Version() }
	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		sql := renderFor(t, driver, def)
		if !strings.Contains(sql, "NOT NULL DEFAULT 1") {
			t.Errorf("%s: version column should be NOT NULL DEFAULT 1:\n%s", driver, sql)
		}
	}
}

func TestSlugIsUnique(t *testing.T) {
	def := func(tbl *schema.Table) { tbl.Slug() }
	sql := renderFor(t, DriverPostgres, def)
	if !strings.Contains(sql, `"slug" VARCHAR(255)`) || !strings.Contains(sql, "UNIQUE") {
		t.Errorf("slug should render as a unique varchar:\n%s", sql)
	}
}

func TestDefaultValueRendering(t *testing.T) {
	tbl := schema.NewTable("flags")
	tbl.Boolean("enabled").Default(true)
	tbl.String("note").Default("it's fine")
	tbl.Timestamp("seen_at").Default(schema.Expr("CURRENT_TIMESTAMP"))
	def := tbl.Definition()

	sql, err := CreateTable(DriverPostgres, def)
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if !strings.Contains(sql, "DEFAULT TRUE") {
		t.Errorf("postgres bool default should be TRUE:\n%s", sql)
	}
	if !strings.Contains(sql, "DEFAULT 'it''s fine'") {
		t.Errorf("string default should be quote-escaped:\n%s", sql)
	}
	if !strings.Contains(sql, "DEFAULT CURRENT_TIMESTAMP") {
		t.Errorf("Expr default should pass through raw:\n%s", sql)
	}

	sql, err = CreateTable(DriverSQLite, def)
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if !strings.Contains(sql, "DEFAULT 1") {
		t.Errorf("sqlite bool default should be 1:\n%s", sql)
	}
}

// One table rendered for all three dialects: the primary key type diverges,
// the unique slug and the timestamp pair come out everywhere.
func TestCommonTableAcrossDialects(t *testing.T) {
	def := func(tbl *schema.Table) {
		tbl.ID()
		tbl.String("slug").Unique()
		tbl.Timestamps()
	}

	cases := []struct {
		driver string
		pk     string
	}{
		{DriverSQLite, `"id" TEXT PRIMARY KEY`},
		{DriverMariaDB, "`id` INT PRIMARY KEY AUTO_INCREMENT"},
		{DriverPostgres, `"id" UUID PRIMARY KEY`},
	}
	for _, c := range cases {
		sql := renderFor(t, c.driver, def)
		if !strings.Contains(sql, c.pk) {
			t.Errorf("%s: expected %q in:\n%s", c.driver, c.pk, sql)
		}
		slugLine := ""
		for _, line := range strings.Split(sql, "\n") {
			if strings.Contains(line, "slug") {
				slugLine = line
			}
		}
		if !strings.Contains(slugLine, "UNIQUE") {
			t.Errorf("%s: expected an inline UNIQUE on slug, got: %s", c.driver, slugLine)
		}
		if !strings.Contains(sql, "created_at") || !strings.Contains(sql, "updated_at") {
			t.Errorf("%s: timestamp pair missing:\n%s", c.driver, sql)
		}
	}
}

func TestRenderingIsDeterministic(t *testing.T) {
	tbl := schema.NewTable("posts")
	tbl.ID()
	tbl.ForeignID("user_id").References("users", "id")
	tbl.String("title").Index()
	tbl.Morphs("target")
	tbl.Unique([]string{"user_id", "title"})
	def := tbl.Definition()

	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		first, err := CreateTable(driver, def)
		if err != nil {
			t.Fatalf("CreateTable(%s) failed: %v", driver, err)
		}
		second, err := CreateTable(driver, def)
		if err != nil {
			t.Fatalf("CreateTable(%s) failed: %v", driver, err)
		}
		if first != second {
			t.Errorf("%s: two renders of the same definition differ", driver)
		}
	}
}

func TestUnknownKindFailsConstruction(t *testing.T) {
	def := schema.TableDefinition{
		Name:    "bad",
		Columns: []schema.Column{{Kind: schema.ColumnKind("hologram"), Name: "x"}},
	}
	for _, driver := range []string{DriverSQLite, DriverMariaDB, DriverPostgres} {
		if _, err := CreateTable(driver, def); err == nil {
			t.Errorf("%s: expected an error for an unknown column kind", driver)
		}
	}
}

func TestUnsupportedDriver(t *testing.T) {
	def := schema.TableDefinition{Name: "t"}
	if _, err := CreateTable("oracle", def); err == nil {
		t.Error("Expected an error for an unsupported driver")
	}
	if _, err := DropTable("oracle", "t"); err == nil {
		t.Error("Expected an error for an unsupported driver")
	}
	if _, err := NewBuilder("oracle"); err == nil {
		t.Error("Expected an error for an unsupported driver")
	}
}

func TestDropTable(t *testing.T) {
	sql, err := DropTable(DriverMariaDB, "users")
	if err != nil {
		t.Fatalf("DropTable failed: %v", err)
	}
	if sql != "DROP TABLE IF EXISTS `users`;" {
		t.Errorf("Unexpected mariadb drop statement: %s", sql)
	}

	sql, err = DropTable(DriverPostgres, "users")
	if err != nil {
		t.Fatalf("DropTable failed: %v", err)
	}
	if sql != `DROP TABLE IF EXISTS "users";` {
		t.Errorf("Unexpected postgres drop statement: %s", sql)
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements("CREATE TABLE a (x INT);\nCREATE INDEX i ON a (x);\n")
	if len(stmts) != 2 {
		t.Fatalf("Expected 2 statements, got %d: %v", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (x INT)" {
		t.Errorf("Unexpected first statement: %q", stmts[0])
	}

	if got := SplitStatements("  ;;  \n"); len(got) != 0 {
		t.Errorf("Expected no statements from blank input, got %v", got)
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	b, err := NewBuilder(DriverSQLite)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if b.Driver() != DriverSQLite {
		t.Errorf("Expected driver %q, got %q", DriverSQLite, b.Driver())
	}

	rendered, err := b.BuildCreateTable("users", func(tbl *schema.Table) {
		tbl.ID()
		tbl.String("name")
	})
	if err != nil {
		t.Fatalf("BuildCreateTable failed: %v", err)
	}
	if rendered.Name != "users" {
		t.Errorf("Expected rendered name 'users', got '%s'", rendered.Name)
	}
	if !strings.Contains(rendered.Content, "CREATE TABLE") {
		t.Errorf("Rendered content is not a CREATE TABLE:\n%s", rendered.Content)
	}

	drop, err := b.BuildDropTable("users")
	if err != nil {
		t.Fatalf("BuildDropTable failed: %v", err)
	}
	if !strings.Contains(drop.Content, "DROP TABLE IF EXISTS") {
		t.Errorf("Unexpected drop content: %s", drop.Content)
	}
}
