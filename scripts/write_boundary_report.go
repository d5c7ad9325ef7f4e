package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Reports which service methods persist through an aggregate and which still
// call repo write methods directly. With -strict any direct write fails the run.

type methodStats struct {
	StructName              string   `json:"struct_name"`
	Method                  string   `json:"method"`
	File                    string   `json:"file"`
	Line                    int      `json:"line"`
	RepoWriteCalls          int      `json:"repo_write_calls"`
	RepoFieldsWritten       []string `json:"repo_fields_written"`
	AggregateWriteCalls     int      `json:"aggregate_write_calls"`
	AggregateWritesObserved []string `json:"aggregate_writes_observed"`
}

type boundaryReport struct {
	ServiceRepoWriteCallsites   int           `json:"service_repo_write_callsites"`
	AggregateOwnedTxCallsites   int           `json:"aggregate_owned_tx_callsites"`
	ServiceStructsWithRepoField []string      `json:"service_structs_with_repo_fields"`
	ResidualMethods             []methodStats `json:"residual_methods"`
	AggregateMethods            []methodStats `json:"aggregate_methods"`
}

type structFields struct {
	RepoFields      map[string]string
	AggregateFields map[string]string
}

var repoWriteMethods = map[string]bool{
	"Save":             true,
	"SaveBooks":        true,
	"DeleteBooksNotIn": true,
	"Create":           true,
	"Delete":           true,
}

var aggregateWriteMethods = map[string]bool{
	"SaveAuthor": true,
	"SaveBook":   true,
}

func main() {
	strict := flag.Bool("strict", false, "exit non-zero when a service writes to a repo directly")
	flag.Parse()
	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	report, err := analyze(root)
	if err != nil {
		exitf("%v", err)
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		exitf("marshal report: %v", err)
	}
	fmt.Println(string(out))
	if *strict && report.ServiceRepoWriteCallsites > 0 {
		exitf("%d repo write call(s) bypass the aggregates", report.ServiceRepoWriteCallsites)
	}
}

func analyze(root string) (boundaryReport, error) {
	servicesDir := filepath.Join(root, "internal", "services")
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, servicesDir, func(fi os.FileInfo) bool {
		name := fi.Name()
		return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
	}, 0)
	if err != nil {
		return boundaryReport{}, fmt.Errorf("parse dir: %w", err)
	}
	pkg, ok := pkgs["services"]
	if !ok {
		return boundaryReport{}, fmt.Errorf("services package not found in %s", servicesDir)
	}

	fieldsByStruct := map[string]structFields{}
	for _, f := range pkg.Files {
		collectStructFields(f, fieldsByStruct)
	}
	var methods []methodStats
	for filePath, f := range pkg.Files {
		rel, err := filepath.Rel(root, filePath)
		if err != nil {
			rel = filePath
		}
		methods = append(methods, collectMethodStats(fset, f, rel, fieldsByStruct)...)
	}
	return buildReport(fieldsByStruct, methods), nil
}

func collectStructFields(file *ast.File, out map[string]structFields) {
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok || st.Fields == nil {
				continue
			}
			sf := structFields{RepoFields: map[string]string{}, AggregateFields: map[string]string{}}
			for _, field := range st.Fields.List {
				sel, ok := field.Type.(*ast.SelectorExpr)
				if !ok || len(field.Names) == 0 {
					continue
				}
				pkgIdent, ok := sel.X.(*ast.Ident)
				if !ok {
					continue
				}
				typeName := sel.Sel.Name
				for _, name := range field.Names {
					switch {
					case pkgIdent.Name == "repos" && strings.HasSuffix(typeName, "Repo"):
						sf.RepoFields[name.Name] = typeName
					case pkgIdent.Name == "domainagg" && strings.HasSuffix(typeName, "Aggregate"):
						sf.AggregateFields[name.Name] = typeName
					}
				}
			}
			if len(sf.RepoFields) > 0 || len(sf.AggregateFields) > 0 {
				out[ts.Name.Name] = sf
			}
		}
	}
}

func collectMethodStats(fset *token.FileSet, file *ast.File, relFile string, fieldsByStruct map[string]structFields) []methodStats {
	var out []methodStats
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || fd.Body == nil || len(fd.Recv.List) == 0 {
			continue
		}
		recvName, recvType := recvInfo(fd.Recv.List[0])
		sf, ok := fieldsByStruct[recvType]
		if recvName == "" || !ok {
			continue
		}

		stats := methodStats{
			StructName: recvType,
			Method:     fd.Name.Name,
			File:       filepath.ToSlash(relFile),
			Line:       fset.Position(fd.Pos()).Line,
		}
		repoFields := map[string]bool{}
		aggWrites := map[string]bool{}
		ast.Inspect(fd.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			fnSel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			rcvSel, ok := fnSel.X.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			baseIdent, ok := rcvSel.X.(*ast.Ident)
			if !ok || baseIdent.Name != recvName {
				return true
			}
			field, method := rcvSel.Sel.Name, fnSel.Sel.Name
			if _, ok := sf.RepoFields[field]; ok && repoWriteMethods[method] {
				stats.RepoWriteCalls++
				repoFields[field] = true
			}
			if _, ok := sf.AggregateFields[field]; ok && aggregateWriteMethods[method] {
				stats.AggregateWriteCalls++
				aggWrites[method] = true
			}
			return true
		})
		stats.RepoFieldsWritten = sortedKeys(repoFields)
		stats.AggregateWritesObserved = sortedKeys(aggWrites)
		out = append(out, stats)
	}
	return out
}

func buildReport(fieldsByStruct map[string]structFields, methods []methodStats) boundaryReport {
	sort.Slice(methods, func(i, j int) bool {
		if methods[i].File == methods[j].File {
			return methods[i].Line < methods[j].Line
		}
		return methods[i].File < methods[j].File
	})

	var report boundaryReport
	withRepos := map[string]bool{}
	for name, sf := range fieldsByStruct {
		if len(sf.RepoFields) > 0 {
			withRepos[name] = true
		}
	}
	report.ServiceStructsWithRepoField = sortedKeys(withRepos)
	for _, m := range methods {
		if m.RepoWriteCalls > 0 {
			report.ServiceRepoWriteCallsites += m.RepoWriteCalls
			report.ResidualMethods = append(report.ResidualMethods, m)
		}
		if m.AggregateWriteCalls > 0 {
			report.AggregateOwnedTxCallsites += m.AggregateWriteCalls
			report.AggregateMethods = append(report.AggregateMethods, m)
		}
	}
	return report
}

func recvInfo(field *ast.Field) (string, string) {
	if field == nil || len(field.Names) == 0 {
		return "", ""
	}
	recvName := field.Names[0].Name
	switch t := field.Type.(type) {
	case *ast.StarExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return recvName, id.Name
		}
	case *ast.Ident:
		return recvName, t.Name
	}
	return "", ""
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
