package interpreter

import "sort"

// GlobalsSnapshot returns a copy of the global variables after a run.
func (i *Interpreter) GlobalsSnapshot() map[string]Value {
	out := make(map[string]Value, len(i.globals))
	for k, v := range i.globals {
		out[k] = v
	}
	return out
}

// FuncNames returns sorted names of user-defined functions.
func (i *Interpreter) FuncNames() []string {
	names := make([]string, 0, len(i.funcs))
	for name := range i.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
