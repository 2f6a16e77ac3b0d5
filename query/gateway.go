// Package query is the validated ad-hoc read surface of the reference
// store. Caller-supplied SQL is parsed into a statement tree and checked
// structurally — top-level operation, every table reference, keyword scan —
// before it comes near the database. Validation fails closed: anything the
// parser cannot prove safe is rejected.
package query

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"
	"go.uber.org/zap"

	"github.com/skyfly/aircraftdb/db"
	"github.com/skyfly/aircraftdb/errors"
	"github.com/skyfly/aircraftdb/refdata"
	"github.com/skyfly/aircraftdb/store"
)

// DefaultRowCap is appended as a LIMIT to queries that carry none.
const DefaultRowCap = 1000

// allowedTables is the closed set of tables ad-hoc queries may reference.
// System and catalog tables (sqlite_master and friends) are not in it,
// which is the point.
var allowedTables = func() map[string]bool {
	allowed := make(map[string]bool)
	for _, shape := range refdata.KnownShapes {
		allowed[shape.String()] = true
	}
	allowed[refdata.ShapeCustom.String()] = true
	return allowed
}()

// forbiddenKeywords rejects write, DDL, and administrative verbs anywhere
// in the query text, even inside sub-expressions the parser accepted. The
// structural checks above already exclude these as statements; the scan is
// the second fence.
var forbiddenKeywords = regexp.MustCompile(
	`(?i)(^|[^a-z0-9_])(drop|delete|update|insert|alter|create|truncate|attach|detach|pragma|vacuum|reindex|load_extension)($|[^a-z0-9_])`)

// Result is one executed ad-hoc query: ordered rows ready for
// serialization, plus the row cap if one was auto-appended.
type Result struct {
	Columns      []string                 `json:"columns"`
	Rows         []map[string]interface{} `json:"rows"`
	RowCount     int                      `json:"row_count"`
	AppliedLimit int                      `json:"applied_limit,omitempty"`
}

// Gateway validates and executes ad-hoc read-only queries.
type Gateway struct {
	mgr    *db.Manager
	logger *zap.SugaredLogger
	rowCap int
}

// NewGateway creates a gateway over the shared connection manager.
// rowCap <= 0 selects DefaultRowCap.
func NewGateway(mgr *db.Manager, logger *zap.SugaredLogger, rowCap int) *Gateway {
	if rowCap <= 0 {
		rowCap = DefaultRowCap
	}
	return &Gateway{mgr: mgr, logger: logger, rowCap: rowCap}
}

// Run validates sql and executes it on the read path. Validation errors
// carry caller-actionable messages; execution errors are sanitized, with
// full driver detail kept in the server log only.
func (g *Gateway) Run(ctx context.Context, sql string) (*Result, error) {
	checked, appliedLimit, err := g.Validate(sql)
	if err != nil {
		return nil, err
	}

	handle, err := g.mgr.Handle(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := handle.QueryContext(ctx, checked)
	if err != nil {
		g.logger.Errorw("Ad-hoc query execution failed", "error", err)
		return nil, errors.Executionf("query execution failed")
	}
	defer rows.Close()

	// The appended LIMIT already bounds the result; the scan cap guards
	// queries that carried their own, larger limit.
	columns, results, err := store.ScanRowMaps(rows, g.rowCap)
	if err != nil {
		g.logger.Errorw("Ad-hoc query scan failed", "error", err)
		return nil, errors.Executionf("query execution failed")
	}

	return &Result{
		Columns:      columns,
		Rows:         results,
		RowCount:     len(results),
		AppliedLimit: appliedLimit,
	}, nil
}

// Validate runs the full validation pipeline and returns the query text to
// execute (with a LIMIT appended when the statement had none) and the
// applied cap (0 when the caller brought their own). Checks run in order
// and fail closed on the first violation.
func (g *Gateway) Validate(sql string) (string, int, error) {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return "", 0, errors.Validationf("query is empty")
	}

	// Exactly one statement. SplitStatementToPieces drops a trailing
	// semicolon but keeps anything after an embedded one.
	pieces, err := sqlparser.SplitStatementToPieces(trimmed)
	if err != nil {
		return "", 0, errors.Validationf("query is not parseable: %v", err)
	}
	if len(pieces) != 1 {
		return "", 0, errors.Validationf("exactly one statement allowed, got %d", len(pieces))
	}
	statement := strings.TrimSpace(pieces[0])

	stmt, err := sqlparser.Parse(statement)
	if err != nil {
		return "", 0, errors.Validationf("query is not parseable: %v", err)
	}

	// Top-level operation must be a read.
	if _, ok := stmt.(sqlparser.SelectStatement); !ok {
		return "", 0, errors.Validationf("only read queries allowed")
	}

	// Every table reference, at any depth, must be allowlisted.
	if err := checkTableReferences(stmt); err != nil {
		return "", 0, err
	}

	// Keyword fence over the raw text, word-bounded so column names like
	// "updated_at" pass while "update" in any disguise does not.
	if m := forbiddenKeywords.FindStringSubmatch(statement); m != nil {
		return "", 0, errors.Validationf("forbidden keyword %q in query", strings.ToLower(m[2]))
	}

	if hasLimit(stmt) {
		return statement, 0, nil
	}
	// Newline before LIMIT so a trailing line comment cannot swallow it.
	return statement + "\nLIMIT " + strconv.Itoa(g.rowCap), g.rowCap, nil
}

// checkTableReferences walks every table node in the statement tree and
// rejects anything outside the allowlist, including qualified names.
func checkTableReferences(stmt sqlparser.Statement) error {
	var refErr error
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		tn, ok := node.(sqlparser.TableName)
		if !ok {
			return true, nil
		}
		name := tn.Name.String()
		if name == "" {
			return true, nil
		}
		if tn.Qualifier.String() != "" {
			refErr = errors.Validationf("qualified table reference %s.%s not allowed",
				tn.Qualifier.String(), name)
			return false, nil
		}
		if !allowedTables[strings.ToLower(name)] {
			refErr = errors.Validationf("table %q is not queryable", name)
			return false, nil
		}
		return true, nil
	}, stmt)
	return refErr
}

// hasLimit reports whether any SELECT in the tree carries an explicit
// LIMIT clause.
func hasLimit(stmt sqlparser.Statement) bool {
	found := false
	_ = sqlparser.Walk(func(node sqlparser.SQLNode) (bool, error) {
		if limit, ok := node.(*sqlparser.Limit); ok && limit != nil {
			found = true
			return false, nil
		}
		return true, nil
	}, stmt)
	return found
}

