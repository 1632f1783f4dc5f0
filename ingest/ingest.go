package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"github.com/katalvlaran/routeflow/network"
)

var validate = validator.New()

// table is a header-indexed CSV reader.
type table struct {
	r    *csv.Reader
	cols map[string]int
}

func newTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return &table{r: cr, cols: cols}, nil
}

// next returns the next record and its line number; io.EOF at the end.
func (t *table) next() ([]string, int, error) {
	rec, err := t.r.Read()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, perr.StartLine, err
		}
		return nil, 0, err
	}
	line, _ := t.r.FieldPos(0)

	return rec, line, nil
}

// get returns the trimmed value of column name, or "" when the row is short
// or the column is absent.
func (t *table) get(rec []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(rec) {
		return ""
	}

	return strings.TrimSpace(rec[i])
}

// ParseNodes reads a node CSV. Rows with a malformed value, an unknown
// node_type or a repeated node_id are skipped; each contributes one
// *RowError to the returned error.
func ParseNodes(r io.Reader) ([]network.Node, error) {
	t, err := newTable(r, colNodeID, colNodeType, colCapacity)
	if err != nil {
		return nil, err
	}

	var (
		nodes []network.Node
		errs  error
		seen  = make(map[string]int)
	)
	for {
		rec, line, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = multierr.Append(errs, &RowError{Line: line, Msg: err.Error(), Err: err})
			continue
		}

		n, err := parseNode(t, rec)
		if err != nil {
			errs = multierr.Append(errs, &RowError{Line: line, Msg: err.Error(), Err: err})
			continue
		}
		if first, dup := seen[n.ID]; dup {
			errs = multierr.Append(errs, &RowError{
				Line: line,
				Msg:  fmt.Sprintf("duplicate node_id %q (first on line %d)", n.ID, first),
			})
			continue
		}
		seen[n.ID] = line
		nodes = append(nodes, n)
	}

	return nodes, errs
}

func parseNode(t *table, rec []string) (network.Node, error) {
	var (
		nr  nodeRecord
		err error
	)
	nr.ID = t.get(rec, colNodeID)
	nr.Type = strings.ToLower(t.get(rec, colNodeType))
	if nr.Capacity, err = parseInt(colCapacity, t.get(rec, colCapacity), true); err != nil {
		return network.Node{}, err
	}
	if nr.Supply, err = parseOptionalInt(colSupply, t.get(rec, colSupply)); err != nil {
		return network.Node{}, err
	}
	if nr.Demand, err = parseOptionalInt(colDemand, t.get(rec, colDemand)); err != nil {
		return network.Node{}, err
	}
	if err = validate.Struct(nr); err != nil {
		return network.Node{}, formatValidationError(err)
	}

	role, err := network.ParseRole(nr.Type)
	if err != nil {
		return network.Node{}, err
	}

	return network.Node{
		ID:       nr.ID,
		Role:     role,
		Capacity: nr.Capacity,
		Supply:   nr.Supply,
		Demand:   nr.Demand,
	}, nil
}

// ParseRoutes reads a route CSV. Duplicate (from,to) pairs are kept; they
// are legal in raw input.
func ParseRoutes(r io.Reader) ([]network.Route, error) {
	t, err := newTable(r, colFrom, colTo, colCost)
	if err != nil {
		return nil, err
	}

	var (
		routes []network.Route
		errs   error
	)
	for {
		rec, line, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err == nil {
			var route network.Route
			if route, err = parseRoute(t, rec); err == nil {
				routes = append(routes, route)
				continue
			}
		}
		errs = multierr.Append(errs, &RowError{Line: line, Msg: err.Error(), Err: err})
	}

	return routes, errs
}

func parseRoute(t *table, rec []string) (network.Route, error) {
	rr := routeRecord{
		From: t.get(rec, colFrom),
		To:   t.get(rec, colTo),
	}
	raw := t.get(rec, colCost)
	if raw == "" {
		return network.Route{}, fmt.Errorf("%s: field is required", colCost)
	}
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return network.Route{}, fmt.Errorf("%s: %q is not a finite number", colCost, raw)
	}
	rr.Cost = cost
	if err := validate.Struct(rr); err != nil {
		return network.Route{}, formatValidationError(err)
	}

	return network.Route{From: rr.From, To: rr.To, Cost: rr.Cost}, nil
}

// CheckReferences reports every route endpoint that names no node.
func CheckReferences(nodes []network.Node, routes []network.Route) error {
	known := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		known[n.ID] = struct{}{}
	}

	var errs error
	for i, r := range routes {
		for _, end := range [2]string{r.From, r.To} {
			if _, ok := known[end]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("%w: route %d (%s) endpoint %q", ErrDanglingRoute, i+1, r, end))
			}
		}
	}

	return errs
}

// Diagnostics flattens err into one free-text line per underlying error.
func Diagnostics(err error) []string {
	errs := multierr.Errors(err)
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}

	return out
}

// Fatal drops row diagnostics and dangling-route reports from err and
// returns what remains: unreadable files, missing columns and the like.
func Fatal(err error) error {
	var fatal error
	for _, e := range multierr.Errors(err) {
		var re *RowError
		if errors.As(e, &re) || errors.Is(e, ErrDanglingRoute) {
			continue
		}
		fatal = multierr.Append(fatal, e)
	}

	return fatal
}

// LoadFiles parses both files and checks references. Row diagnostics carry
// the file path. Dangling routes are dropped from the result.
func LoadFiles(nodesPath, routesPath string) ([]network.Node, []network.Route, error) {
	nodes, nodeErr := parseFile(nodesPath, ParseNodes)
	routes, routeErr := parseFile(routesPath, ParseRoutes)
	errs := multierr.Combine(nodeErr, routeErr)

	if refErr := CheckReferences(nodes, routes); refErr != nil {
		errs = multierr.Append(errs, refErr)
		routes = dropDangling(nodes, routes)
	}

	return nodes, routes, errs
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) (_ []T, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	out, perr := parse(f)
	for _, e := range multierr.Errors(perr) {
		var re *RowError
		if errors.As(e, &re) {
			re.File = path
		}
	}
	if perr != nil && !isRowErrors(perr) {
		return out, fmt.Errorf("%s: %w", path, perr)
	}

	return out, perr
}

func isRowErrors(err error) bool {
	for _, e := range multierr.Errors(err) {
		var re *RowError
		if !errors.As(e, &re) {
			return false
		}
	}

	return true
}

func dropDangling(nodes []network.Node, routes []network.Route) []network.Route {
	known := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		known[n.ID] = struct{}{}
	}
	out := routes[:0:0]
	for _, r := range routes {
		_, okFrom := known[r.From]
		_, okTo := known[r.To]
		if okFrom && okTo {
			out = append(out, r)
		}
	}

	return out
}

func parseInt(col, raw string, required bool) (int64, error) {
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s: field is required", col)
		}
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", col, raw)
	}

	return v, nil
}

func parseOptionalInt(col, raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := parseInt(col, raw, false)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// formatValidationError reports the first failed struct tag by CSV column.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	e := verrs[0]
	col := columnFor(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", col)
	case "gte":
		return fmt.Errorf("%s: must be at least %s, got %v", col, e.Param(), e.Value())
	case "oneof":
		return fmt.Errorf("%s: %w: %q", col, network.ErrUnknownRole, e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", col, e.Tag())
	}
}

func columnFor(field string) string {
	switch field {
	case "ID":
		return colNodeID
	case "Type":
		return colNodeType
	case "Capacity":
		return colCapacity
	case "Supply":
		return colSupply
	case "Demand":
		return colDemand
	case "From":
		return colFrom
	case "To":
		return colTo
	}

	return strings.ToLower(field)
}
