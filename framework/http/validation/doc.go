// Package validation validates flat string payloads with pipe-separated rules.
//
//	v := validation.Make(map[string]string{
//	    "target": "#counter .increment",
//	    "type":   "click",
//	}, validation.Rules{
//	    "target": "required|max:200|selector",
//	    "type":   "required|alpha_dash",
//	})
//
//	if v.Fails() {
//	    res.ValidationError(v.Errors()) // 422 {"errors": {"field": ["message"]}}
//	}
//
// Rules run left to right and stop at the first failure for a field.
//
//	required     value is not blank
//	min:n        at least n characters
//	max:n        at most n characters
//	in:a,b,c     one of the listed values
//	alpha_dash   letters, digits, dashes and underscores only
//	selector     a CSS selector the dom package can compile
//	sometimes    skip the remaining rules when the value is empty
package validation
