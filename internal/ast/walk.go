package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *CompilationUnit:
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *Pou:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		if n.Extends != nil {
			Walk(n.Extends, fn)
		}
		for _, impl := range n.Implements {
			Walk(impl, fn)
		}
		for _, pragma := range n.Pragmas {
			Walk(pragma, fn)
		}
		for _, block := range n.VarBlocks {
			Walk(block, fn)
		}
		for _, method := range n.Methods {
			Walk(method, fn)
		}
		walkStmts(n.Body, fn)

	case *Namespace:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *Pragma:
		// leaf

	case *VarBlock:
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *VarDecl:
		for _, name := range n.Names {
			Walk(name, fn)
		}
		if n.Address != nil {
			Walk(n.Address, fn)
		}
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}

	case *TypeBlock:
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *TypeDecl:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Type != nil {
			Walk(n.Type, fn)
		}
		if n.Init != nil {
			Walk(n.Init, fn)
		}

	case *NamedType:
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *StringType:
		if n.Length != nil {
			Walk(n.Length, fn)
		}

	case *Subrange:
		if n.Low != nil {
			Walk(n.Low, fn)
		}
		if n.High != nil {
			Walk(n.High, fn)
		}

	case *ArrayType:
		for _, dim := range n.Dimensions {
			Walk(dim, fn)
		}
		if n.Elem != nil {
			Walk(n.Elem, fn)
		}

	case *SubrangeType:
		if n.Base != nil {
			Walk(n.Base, fn)
		}
		if n.Range != nil {
			Walk(n.Range, fn)
		}

	case *EnumType:
		for _, v := range n.Values {
			Walk(v, fn)
		}

	case *EnumValue:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *StructType:
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *RefType:
		if n.To != nil {
			Walk(n.To, fn)
		}

	case *AssignStmt:
		Walk(n.Target, fn)
		Walk(n.Value, fn)

	case *CallStmt:
		if n.Call != nil {
			Walk(n.Call, fn)
		}

	case *IfStmt:
		Walk(n.Cond, fn)
		walkStmts(n.Then, fn)
		for _, elsif := range n.Elsifs {
			Walk(elsif, fn)
		}
		walkStmts(n.Else, fn)

	case *ElsifBranch:
		Walk(n.Cond, fn)
		walkStmts(n.Body, fn)

	case *CaseStmt:
		Walk(n.Selector, fn)
		for _, branch := range n.Branches {
			Walk(branch, fn)
		}
		walkStmts(n.Else, fn)

	case *CaseBranch:
		for _, label := range n.Labels {
			Walk(label, fn)
		}
		walkStmts(n.Body, fn)

	case *ForStmt:
		if n.Var != nil {
			Walk(n.Var, fn)
		}
		Walk(n.From, fn)
		Walk(n.To, fn)
		if n.By != nil {
			Walk(n.By, fn)
		}
		walkStmts(n.Body, fn)

	case *WhileStmt:
		Walk(n.Cond, fn)
		walkStmts(n.Body, fn)

	case *RepeatStmt:
		walkStmts(n.Body, fn)
		Walk(n.Until, fn)

	case *GotoStmt:
		if n.Label != nil {
			Walk(n.Label, fn)
		}

	case *LabelStmt:
		if n.Name != nil {
			Walk(n.Name, fn)
		}

	case *RegionStmt:
		walkStmts(n.Body, fn)

	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *ExitStmt, *ContinueStmt, *EmptyStmt:
		// leaves

	case *Ident, *IntLit, *RealLit, *BoolLit, *StringLit, *TimeLit,
		*AddressLit, *NullLit:
		// leaves

	case *PrefixExpr:
		Walk(n.Operand, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *CallExpr:
		Walk(n.Fn, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *CallArg:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *IndexExpr:
		Walk(n.X, fn)
		for _, idx := range n.Indexes {
			Walk(idx, fn)
		}

	case *MemberExpr:
		Walk(n.X, fn)
		if n.Member != nil {
			Walk(n.Member, fn)
		}

	case *DerefExpr:
		Walk(n.X, fn)

	case *RangeExpr:
		Walk(n.Low, fn)
		Walk(n.High, fn)
	}
}

func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, stmt := range stmts {
		Walk(stmt, fn)
	}
}
