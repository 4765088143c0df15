// Package tablename содержит анализатор, запрещающий строковые литералы там,
// где ожидается имя таблицы хранилища (store.Table).
package tablename

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// storePkgSuffix - путь пакета хранилища, в котором объявлен тип Table
const storePkgSuffix = "internal/store"

// Analyzer сообщает о литералах, неявно приведённых к store.Table вне пакета store
var Analyzer = &analysis.Analyzer{
	Name:     "tablename",
	Doc:      "запрещает строковые литералы вместо констант store.Table",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func isTableType(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	if obj.Name() != "Table" || obj.Pkg() == nil {
		return false
	}
	return strings.HasSuffix(obj.Pkg().Path(), storePkgSuffix)
}

func run(pass *analysis.Pass) (any, error) {
	// В самом пакете store литералы объявляют константы таблиц
	if strings.HasSuffix(pass.Pkg.Path(), storePkgSuffix) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.BasicLit)(nil)}, func(n ast.Node) {
		lit := n.(*ast.BasicLit)
		if lit.Kind != token.STRING {
			return
		}
		tv, ok := pass.TypesInfo.Types[lit]
		if !ok || !isTableType(tv.Type) {
			return
		}
		pass.Reportf(lit.Pos(), "используйте константу store.Table вместо литерала %s", lit.Value)
	})
	return nil, nil
}
