package interp

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/gaarutyunov/mlang/pkg/ast"
	"github.com/gaarutyunov/mlang/pkg/diag"
)

// varEntry is one binding in a Scope's variable table.
type varEntry struct {
	cell    *Cell
	isConst bool
}

// Scope is one level of lexical bindings: one brace-delimited block or one
// function frame's parameter layer. Names are unique within a scope;
// insertion order is preserved (not load-bearing for evaluation, but it
// makes a debug dump of a scope deterministic).
type Scope struct {
	vars     *orderedmap.OrderedMap[string, *varEntry]
	funcs    *orderedmap.OrderedMap[string, *ast.FuncDef]
	structs  *orderedmap.OrderedMap[string, *ast.StructDef]
	variants *orderedmap.OrderedMap[string, *ast.VariantDef]
}

func NewScope() *Scope {
	return &Scope{
		vars:     orderedmap.New[string, *varEntry](),
		funcs:    orderedmap.New[string, *ast.FuncDef](),
		structs:  orderedmap.New[string, *ast.StructDef](),
		variants: orderedmap.New[string, *ast.VariantDef](),
	}
}

func (s *Scope) defineVar(pos diag.Position, name string, cell *Cell, isConst bool) error {
	if _, exists := s.vars.Get(name); exists {
		return diag.New(diag.VariableRedefinition, pos, "variable %q already defined in this scope", name)
	}
	s.vars.Set(name, &varEntry{cell: cell, isConst: isConst})
	return nil
}

func (s *Scope) lookupVar(name string) (*Reference, bool) {
	e, ok := s.vars.Get(name)
	if !ok {
		return nil, false
	}
	return &Reference{Cell: e.cell, IsConst: e.isConst}, true
}

func (s *Scope) defineFunc(pos diag.Position, def *ast.FuncDef) error {
	if _, exists := s.funcs.Get(def.Name); exists {
		return diag.New(diag.FunctionRedefinition, pos, "function %q already defined in this scope", def.Name)
	}
	s.funcs.Set(def.Name, def)
	return nil
}

func (s *Scope) lookupFunc(name string) (*ast.FuncDef, bool) {
	return s.funcs.Get(name)
}

func (s *Scope) defineStruct(pos diag.Position, def *ast.StructDef) error {
	if _, exists := s.structs.Get(def.Name); exists {
		return diag.New(diag.StructRedefinition, pos, "struct %q already defined in this scope", def.Name)
	}
	s.structs.Set(def.Name, def)
	return nil
}

func (s *Scope) lookupStruct(name string) (*ast.StructDef, bool) {
	return s.structs.Get(name)
}

func (s *Scope) defineVariant(pos diag.Position, def *ast.VariantDef) error {
	if _, exists := s.variants.Get(def.Name); exists {
		return diag.New(diag.VariantRedefinition, pos, "variant %q already defined in this scope", def.Name)
	}
	s.variants.Set(def.Name, def)
	return nil
}

func (s *Scope) lookupVariant(name string) (*ast.VariantDef, bool) {
	return s.variants.Get(name)
}

// CallContext is one function activation: a stack of scopes (innermost
// last) plus a pointer to the call context in which the active function
// was *defined* — not the one that called it — so closures see their
// defining environment rather than the caller's.
type CallContext struct {
	scopes []*Scope
	parent *CallContext
}

// NewCallContext creates a call context with one base scope already pushed.
func NewCallContext(parent *CallContext) *CallContext {
	return &CallContext{scopes: []*Scope{NewScope()}, parent: parent}
}

func (c *CallContext) PushScope() {
	c.scopes = append(c.scopes, NewScope())
}

func (c *CallContext) PopScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *CallContext) innermost() *Scope {
	return c.scopes[len(c.scopes)-1]
}

func (c *CallContext) LookupVar(name string) (*Reference, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if ref, ok := c.scopes[i].lookupVar(name); ok {
			return ref, true
		}
	}
	if c.parent != nil {
		return c.parent.LookupVar(name)
	}
	return nil, false
}

func (c *CallContext) LookupFunc(name string) (*ast.FuncDef, *CallContext, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if def, ok := c.scopes[i].lookupFunc(name); ok {
			return def, c, true
		}
	}
	if c.parent != nil {
		return c.parent.LookupFunc(name)
	}
	return nil, nil, false
}

func (c *CallContext) LookupStruct(name string) (*ast.StructDef, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if def, ok := c.scopes[i].lookupStruct(name); ok {
			return def, true
		}
	}
	if c.parent != nil {
		return c.parent.LookupStruct(name)
	}
	return nil, false
}

func (c *CallContext) LookupVariant(name string) (*ast.VariantDef, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if def, ok := c.scopes[i].lookupVariant(name); ok {
			return def, true
		}
	}
	if c.parent != nil {
		return c.parent.LookupVariant(name)
	}
	return nil, false
}

func (c *CallContext) DefineVar(pos diag.Position, name string, cell *Cell, isConst bool) error {
	return c.innermost().defineVar(pos, name, cell, isConst)
}

func (c *CallContext) DefineFunc(pos diag.Position, def *ast.FuncDef) error {
	return c.innermost().defineFunc(pos, def)
}

func (c *CallContext) DefineStruct(pos diag.Position, def *ast.StructDef) error {
	return c.innermost().defineStruct(pos, def)
}

func (c *CallContext) DefineVariant(pos diag.Position, def *ast.VariantDef) error {
	return c.innermost().defineVariant(pos, def)
}
