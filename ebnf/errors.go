package ebnf

import "reflect"

// ErrorList flattens err into its individual errors. It understands errors
// joined with errors.Join as well as the error lists returned by
// golang.org/x/exp/ebnf, which are plain slices of errors.
func ErrorList(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, ErrorList(e)...)
		}
		return out
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		out := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if e, ok := v.Index(i).Interface().(error); ok {
				out = append(out, e)
			}
		}
		return out
	}
	return []error{err}
}
