package libdiff

import (
	"github.com/signadot/treediff/ir"
	"github.com/signadot/treediff/script"
)

// DiffMap removes keys only in from, then in sorted key order sets keys
// only in to or whose value changed shape, and recurses on the rest.
func DiffMap(from, to *ir.Map, path ir.Path, df DiffFunc) (script.Script, error) {
	var res script.Script
	for _, k := range from.Keys() {
		if _, ok := to.Entries[k]; !ok {
			res = append(res, script.NewRemoveMapKey(path, k))
		}
	}
	for _, k := range to.Keys() {
		tv := ir.OrNull(to.Entries[k])
		fv, ok := from.Entries[k]
		if !ok || !ir.SameShape(fv, tv) {
			if err := Writable(path.Field(k), tv); err != nil {
				return nil, err
			}
			res = append(res, script.NewSetMapValue(path, k, tv.Clone()))
			continue
		}
		sub, err := df(fv, tv, path.Field(k))
		if err != nil {
			return nil, err
		}
		res = append(res, sub...)
	}
	return res, nil
}
